package get_available_slots

import (
	"time"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/internal/service/appointments/models"
	getAvailableSlots "github.com/m04kA/GovAppointmentService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ServiceID    int64                     `json:"serviceId"`
	DepartmentID int64                     `json:"departmentId"`
	StartDate    string                    `json:"startDate"` // "2025-03-10"
	EndDate      string                    `json:"endDate"`
	Slots        []models.TimeSlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case.
// Пустые даты означают значения по умолчанию.
func ToUseCaseRequest(serviceID int64, startDate, endDate string) (*getAvailableSlots.Request, error) {
	req := &getAvailableSlots.Request{ServiceID: serviceID}

	if startDate != "" {
		d, err := time.Parse(domain.DateFormat, startDate)
		if err != nil {
			return nil, err
		}
		req.StartDate = &d
	}

	if endDate != "" {
		d, err := time.Parse(domain.DateFormat, endDate)
		if err != nil {
			return nil, err
		}
		req.EndDate = &d
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		ServiceID:    resp.ServiceID,
		DepartmentID: resp.DepartmentID,
		StartDate:    resp.StartDate.Format(domain.DateFormat),
		EndDate:      resp.EndDate.Format(domain.DateFormat),
		Slots:        models.FromDomainTimeSlots(resp.Slots),
	}
}
