package get_appointment_qr

import "context"

type AppointmentService interface {
	QRCode(ctx context.Context, id int64, userID int64) ([]byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
