package create_appointment

import (
	"context"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/internal/integrations/blobstore"
	"github.com/m04kA/GovAppointmentService/internal/service/booking"
)

// AppointmentPlacer размещение приёма в слоте внутри транзакции
type AppointmentPlacer interface {
	Place(txCtx context.Context, req booking.PlaceRequest) (*domain.Appointment, error)
}

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	GetDetailsByID(ctx context.Context, id int64) (*domain.AppointmentDetails, error)
}

// DocumentRepository интерфейс репозитория документов
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) (*domain.Document, error)
}

// BlobStore хранилище файлов
type BlobStore interface {
	Upload(ctx context.Context, data []byte, originalName, folder string) (*blobstore.UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

// Notifier доставка уведомлений (best-effort)
type Notifier interface {
	Send(ctx context.Context, n domain.Notification) error
}

// BookingRecorder учёт исходов бронирования (метрики)
type BookingRecorder interface {
	RecordBooking(outcome string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
