package assignment

import (
	"context"
	"time"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

// OfficerRepository интерфейс репозитория офицеров
type OfficerRepository interface {
	ListActiveByDepartment(ctx context.Context, departmentID int64, excludeID *int64) ([]*domain.Officer, error)
}

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	ListByOfficersInRange(ctx context.Context, officerIDs []int64, from, to time.Time) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
