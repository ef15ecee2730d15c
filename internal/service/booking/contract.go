package booking

import (
	"context"
	"time"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// TimeSlotRepository интерфейс репозитория временных слотов
type TimeSlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	UpdateBookings(ctx context.Context, slot *domain.TimeSlot, expectedCurrent int) error
}

// OfficerRepository интерфейс репозитория офицеров
type OfficerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Officer, error)
}

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	HasActiveForUserSlot(ctx context.Context, userID, timeSlotID int64) (bool, error)
}

// OfficerResolver подбор офицера на время приёма
type OfficerResolver interface {
	Resolve(ctx context.Context, departmentID int64, target time.Time, excludeOfficerID *int64) (*domain.Officer, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
