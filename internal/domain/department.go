package domain

import (
	"strings"
	"time"

	"github.com/m04kA/GovAppointmentService/pkg/types"
)

// Department a government office where services are provided
type Department struct {
	ID           int64
	Code         string
	Name         string
	Address      *string
	WorkingHours WorkingHours
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DaySchedule рабочее время в конкретный день недели
type DaySchedule struct {
	IsOpen    bool             `json:"isOpen"`
	OpenTime  types.TimeString `json:"openTime,omitempty"`
	CloseTime types.TimeString `json:"closeTime,omitempty"`
}

// WorkingHours расписание по дням недели, ключи monday..sunday.
// Хранится в JSONB колонке departments.working_hours.
type WorkingHours map[string]DaySchedule

// ForDay расписание на день недели даты; отсутствующий день считается выходным
func (w WorkingHours) ForDay(date time.Time) DaySchedule {
	day, ok := w[strings.ToLower(date.Weekday().String())]
	if !ok {
		return DaySchedule{IsOpen: false}
	}
	return day
}
