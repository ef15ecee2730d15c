package process_document

import (
	"context"

	"github.com/m04kA/GovAppointmentService/internal/service/appointments/models"
)

type DocumentService interface {
	Process(ctx context.Context, documentID, officerID int64, status string, notes *string) (*models.DocumentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
