package get_appointment_slip

import "context"

type AppointmentService interface {
	Slip(ctx context.Context, id int64, userID int64) ([]byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
