package update_appointment_status

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound общий предок ошибок "не найдено"
	ErrNotFound = errors.New("update_appointment_status: not found")

	// ErrAppointmentNotFound приём не найден
	ErrAppointmentNotFound = fmt.Errorf("%w: appointment", ErrNotFound)

	// ErrOfficerNotFound офицер не найден, неактивен или из другого отдела
	ErrOfficerNotFound = fmt.Errorf("%w: officer", ErrNotFound)

	// ErrInvalidTransition переход между статусами запрещён
	ErrInvalidTransition = errors.New("update_appointment_status: invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment_status: internal error")
)
