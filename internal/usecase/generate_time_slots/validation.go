package generate_time_slots

import (
	"fmt"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

// validateRequest проверяет входные данные
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.DepartmentID <= 0 {
		return fmt.Errorf("%w: department_id must be positive", ErrInvalidInput)
	}
	if req.From.IsZero() {
		return fmt.Errorf("%w: from date is required", ErrInvalidInput)
	}
	if req.Days < 1 || req.Days > domain.MaxGenerationDays {
		return fmt.Errorf("%w: days must be in [1, %d]", ErrInvalidInput, domain.MaxGenerationDays)
	}
	if req.MaxBookings != nil && *req.MaxBookings < 1 {
		return fmt.Errorf("%w: max_bookings must be positive", ErrInvalidInput)
	}
	return nil
}
