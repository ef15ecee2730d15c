package generate_time_slots

import "errors"

var (
	// ErrDepartmentNotFound возвращается, когда отдел не найден
	ErrDepartmentNotFound = errors.New("generate_time_slots: department not found")

	// ErrInvalidWorkingHours расписание отдела не позволяет нарезать слоты
	ErrInvalidWorkingHours = errors.New("generate_time_slots: invalid working hours")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_time_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_time_slots: internal error")
)
