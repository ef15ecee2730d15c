package update_appointment_status

import "github.com/m04kA/GovAppointmentService/internal/domain"

// Request модель запроса на смену статуса приёма
type Request struct {
	AppointmentID int64  // ID приёма
	Status        string // Новый статус (PENDING, CONFIRMED, IN_PROGRESS, ...)
	OfficerID     *int64 // Офицер, принимающий приём (учитывается для IN_PROGRESS)
}

// Response приём после смены статуса
type Response struct {
	Appointment *domain.AppointmentDetails
}
