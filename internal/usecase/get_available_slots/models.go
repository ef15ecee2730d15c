package get_available_slots

import (
	"time"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64      // ID услуги
	StartDate *time.Time // Первый день периода (по умолчанию сегодня)
	EndDate   *time.Time // Последний день периода включительно (по умолчанию +windowDays)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ServiceID    int64
	DepartmentID int64
	StartDate    time.Time
	EndDate      time.Time
	Slots        []*domain.TimeSlot // по возрастанию времени начала
}
