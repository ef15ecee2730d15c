package generate_time_slots

import (
	"time"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

// Request модель запроса на генерацию слотов
type Request struct {
	DepartmentID int64     // ID отдела
	From         time.Time // Первый день (время игнорируется)
	Days         int       // Количество дней, 1..62
	MaxBookings  *int      // Вместимость слота (по умолчанию из конфигурации)
}

// Response созданные слоты; уже существовавшие не возвращаются
type Response struct {
	DepartmentID int64
	Created      []*domain.TimeSlot
	Skipped      int // слоты, которые уже были в расписании
}

// Config параметры нарезки
type Config struct {
	GranularityMinutes int
	DefaultMaxBookings int
	Location           *time.Location
}
