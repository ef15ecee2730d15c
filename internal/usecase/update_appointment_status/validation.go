package update_appointment_status

import (
	"fmt"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

// validateRequest проверяет запрос и разбирает целевой статус
func validateRequest(req *Request) (domain.AppointmentStatus, error) {
	if req == nil {
		return "", fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.AppointmentID <= 0 {
		return "", fmt.Errorf("%w: appointment_id must be positive", ErrInvalidInput)
	}
	if req.OfficerID != nil && *req.OfficerID <= 0 {
		return "", fmt.Errorf("%w: officer_id must be positive", ErrInvalidInput)
	}

	status, err := domain.ParseAppointmentStatus(req.Status)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return status, nil
}
