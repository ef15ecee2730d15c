package generate_time_slots

import (
	"time"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/internal/service/appointments/models"
	generateTimeSlots "github.com/m04kA/GovAppointmentService/internal/usecase/generate_time_slots"
)

// GenerateRequest HTTP request model
type GenerateRequest struct {
	From        string `json:"from"` // "2025-03-10"
	Days        int    `json:"days"`
	MaxBookings *int   `json:"maxBookings,omitempty"`
}

// GenerateResponse HTTP response model
type GenerateResponse struct {
	DepartmentID int64                     `json:"departmentId"`
	Created      []models.TimeSlotResponse `json:"created"`
	Skipped      int                       `json:"skipped"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateRequest) ToUseCaseRequest(departmentID int64) (*generateTimeSlots.Request, error) {
	from, err := time.Parse(domain.DateFormat, r.From)
	if err != nil {
		return nil, err
	}

	return &generateTimeSlots.Request{
		DepartmentID: departmentID,
		From:         from,
		Days:         r.Days,
		MaxBookings:  r.MaxBookings,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateTimeSlots.Response) *GenerateResponse {
	return &GenerateResponse{
		DepartmentID: resp.DepartmentID,
		Created:      models.FromDomainTimeSlots(resp.Created),
		Skipped:      resp.Skipped,
	}
}
