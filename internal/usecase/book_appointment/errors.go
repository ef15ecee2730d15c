package book_appointment

import (
	"errors"

	"github.com/m04kA/GovAppointmentService/internal/service/booking"
)

// Ошибки размещения приёма общие для всех сценариев бронирования
var (
	ErrNotFound               = booking.ErrNotFound
	ErrUserNotFound           = booking.ErrUserNotFound
	ErrServiceNotFound        = booking.ErrServiceNotFound
	ErrTimeSlotNotFound       = booking.ErrTimeSlotNotFound
	ErrOfficerNotFound        = booking.ErrOfficerNotFound
	ErrSlotFullyBooked        = booking.ErrSlotFullyBooked
	ErrSlotNotBookable        = booking.ErrSlotNotBookable
	ErrAlreadyBooked          = booking.ErrAlreadyBooked
	ErrNoOfficersAvailable    = booking.ErrNoOfficersAvailable
	ErrSlotDepartmentMismatch = booking.ErrSlotDepartmentMismatch
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
