package update_appointment_status

import (
	updateStatus "github.com/m04kA/GovAppointmentService/internal/usecase/update_appointment_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status    string `json:"status"`
	OfficerID *int64 `json:"officerId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateStatusRequest) ToUseCaseRequest(appointmentID int64) *updateStatus.Request {
	return &updateStatus.Request{
		AppointmentID: appointmentID,
		Status:        r.Status,
		OfficerID:     r.OfficerID,
	}
}
