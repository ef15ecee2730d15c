package create_appointment

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

// validateRequest проверяет запрос и файлы до открытия транзакции
func validateRequest(req *Request, limits domain.DocumentLimits) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.UserID <= 0 || req.ServiceID <= 0 || req.TimeSlotID <= 0 {
		return fmt.Errorf("%w: user_id, service_id and time_slot_id must be positive", ErrInvalidInput)
	}
	if req.OfficerID != nil && *req.OfficerID <= 0 {
		return fmt.Errorf("%w: officer_id must be positive", ErrInvalidInput)
	}
	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if limits.MaxFiles > 0 && len(req.Files) > limits.MaxFiles {
		return fmt.Errorf("%w: at most %d documents allowed", ErrInvalidInput, limits.MaxFiles)
	}
	for _, f := range req.Files {
		if err := limits.CheckFile(f); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	return nil
}
