package create_feedback

import (
	"context"

	"github.com/m04kA/GovAppointmentService/internal/service/feedback"
)

type FeedbackService interface {
	Create(ctx context.Context, req *feedback.CreateRequest) (*feedback.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
