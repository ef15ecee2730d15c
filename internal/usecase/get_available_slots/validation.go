package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

// validateRequest проверяет входные данные
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service_id must be positive", ErrInvalidInput)
	}
	return nil
}

// resolvePeriod период поиска в днях [start, end], по умолчанию сегодня + windowDays
func resolvePeriod(req *Request, now time.Time, windowDays int) (time.Time, time.Time, error) {
	start := truncateToDay(now)
	if req.StartDate != nil {
		start = truncateToDay(*req.StartDate)
	}

	end := start.AddDate(0, 0, windowDays)
	if req.EndDate != nil {
		end = truncateToDay(*req.EndDate)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidDateRange, end.Format(domain.DateFormat), start.Format(domain.DateFormat))
	}
	if end.Sub(start) > time.Duration(domain.MaxGenerationDays)*24*time.Hour {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: period must not exceed %d days",
			ErrInvalidDateRange, domain.MaxGenerationDays)
	}

	return start, end, nil
}

// truncateToDay обрезает время до начала дня
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
