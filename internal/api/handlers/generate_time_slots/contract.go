package generate_time_slots

import (
	"context"

	generateTimeSlots "github.com/m04kA/GovAppointmentService/internal/usecase/generate_time_slots"
)

type GenerateTimeSlotsUseCase interface {
	Execute(ctx context.Context, req *generateTimeSlots.Request) (*generateTimeSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
