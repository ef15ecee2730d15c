package update_appointment_status

import (
	"context"
	"time"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, appointment *domain.Appointment) error
	GetDetailsByID(ctx context.Context, id int64) (*domain.AppointmentDetails, error)
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

// Notifier доставка уведомлений (best-effort)
type Notifier interface {
	Send(ctx context.Context, n domain.Notification) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
