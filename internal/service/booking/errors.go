package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound общий предок ошибок "не найдено"
	ErrNotFound = errors.New("booking: not found")

	// ErrUserNotFound пользователь не найден
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrServiceNotFound услуга не найдена или неактивна
	ErrServiceNotFound = fmt.Errorf("%w: service", ErrNotFound)

	// ErrTimeSlotNotFound слот не найден
	ErrTimeSlotNotFound = fmt.Errorf("%w: time slot", ErrNotFound)

	// ErrOfficerNotFound офицер не найден, неактивен или из другого отдела
	ErrOfficerNotFound = fmt.Errorf("%w: officer", ErrNotFound)

	// ErrSlotFullyBooked все места в слоте заняты
	ErrSlotFullyBooked = errors.New("booking: time slot is fully booked")

	// ErrSlotNotBookable слот заблокирован или приходится на праздник
	ErrSlotNotBookable = errors.New("booking: time slot is not bookable")

	// ErrAlreadyBooked у пользователя уже есть активный приём на этот слот
	ErrAlreadyBooked = errors.New("booking: user already booked this slot")

	// ErrNoOfficersAvailable в отделе нет активных офицеров
	ErrNoOfficersAvailable = errors.New("booking: no officers available")

	// ErrSlotDepartmentMismatch слот принадлежит другому отделу, чем услуга
	ErrSlotDepartmentMismatch = errors.New("booking: time slot does not belong to the service department")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("booking: internal error")
)
