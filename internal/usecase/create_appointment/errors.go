package create_appointment

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
	// ErrUploadFailure хранилище файлов не приняло документ, бронирование отменено
	ErrUploadFailure = errors.New("create_appointment: document upload failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
