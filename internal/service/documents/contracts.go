package documents

import (
	"context"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/internal/integrations/blobstore"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
}

// DocumentRepository интерфейс репозитория документов
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) (*domain.Document, error)
	GetByID(ctx context.Context, id int64) (*domain.Document, error)
	ListByAppointment(ctx context.Context, appointmentID int64) ([]*domain.Document, error)
	UpdateProcessing(ctx context.Context, id int64, status domain.DocumentStatus, officerID int64, notes *string) (*domain.Document, error)
	Delete(ctx context.Context, id int64) error
}

// OfficerRepository интерфейс репозитория офицеров
type OfficerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Officer, error)
}

// BlobStore хранилище файлов
type BlobStore interface {
	Upload(ctx context.Context, data []byte, originalName, folder string) (*blobstore.UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
