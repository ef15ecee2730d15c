package list_documents

import (
	"context"

	"github.com/m04kA/GovAppointmentService/internal/service/appointments/models"
)

type DocumentService interface {
	List(ctx context.Context, appointmentID, userID int64) ([]models.DocumentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
