package book_appointment

import (
	bookAppointment "github.com/m04kA/GovAppointmentService/internal/usecase/book_appointment"
)

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	ServiceID  int64   `json:"serviceId"`
	TimeSlotID int64   `json:"timeSlotId"`
	Notes      *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookAppointmentRequest) ToUseCaseRequest(userID int64) *bookAppointment.Request {
	return &bookAppointment.Request{
		UserID:     userID,
		ServiceID:  r.ServiceID,
		TimeSlotID: r.TimeSlotID,
		Notes:      r.Notes,
	}
}
