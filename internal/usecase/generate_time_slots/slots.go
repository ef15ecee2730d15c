package generate_time_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

// daySlots нарезает рабочий день на слоты с шагом granularity.
// Слоты идут встык от открытия; последний слот заканчивается не позже закрытия.
func daySlots(departmentID int64, date time.Time, schedule domain.DaySchedule, granularity, maxBookings int) ([]*domain.TimeSlot, error) {
	if !schedule.IsOpen {
		return nil, nil
	}
	if schedule.OpenTime.IsZero() || schedule.CloseTime.IsZero() {
		return nil, fmt.Errorf("%w: %s is open but has no hours", ErrInvalidWorkingHours, date.Weekday())
	}
	if err := schedule.OpenTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkingHours, err)
	}
	if err := schedule.CloseTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkingHours, err)
	}

	slots := make([]*domain.TimeSlot, 0)
	current := schedule.OpenTime

	for current.IsBefore(schedule.CloseTime) {
		end, err := current.AddMinutes(granularity)
		if err != nil || end.IsAfter(schedule.CloseTime) {
			break
		}

		startAt, err := current.On(date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWorkingHours, err)
		}
		endAt, err := end.On(date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWorkingHours, err)
		}

		slots = append(slots, &domain.TimeSlot{
			DepartmentID: departmentID,
			Date:         time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()),
			StartTime:    startAt,
			EndTime:      endAt,
			MaxBookings:  maxBookings,
			Status:       domain.SlotAvailable,
		})
		current = end
	}

	return slots, nil
}
