package get_document

import (
	"context"

	"github.com/m04kA/GovAppointmentService/internal/service/appointments/models"
)

type DocumentService interface {
	Get(ctx context.Context, documentID int64) (*models.DocumentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
