package upload_document

import (
	"context"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/internal/service/appointments/models"
)

type DocumentService interface {
	Upload(ctx context.Context, appointmentID, userID int64, file domain.UploadFile) (*models.DocumentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
