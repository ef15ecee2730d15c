package generate_time_slots

import (
	"context"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

// DepartmentRepository интерфейс репозитория отделов
type DepartmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
}

// TimeSlotRepository интерфейс репозитория временных слотов
type TimeSlotRepository interface {
	// CreateBatch вставляет слоты, пропуская уже существующие
	CreateBatch(ctx context.Context, slots []*domain.TimeSlot) ([]*domain.TimeSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
