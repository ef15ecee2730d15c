package appointments

import (
	"context"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	GetDetailsByID(ctx context.Context, id int64) (*domain.AppointmentDetails, error)
	ListDetails(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.AppointmentDetails, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
