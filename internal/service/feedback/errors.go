package feedback

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда приём не найден
	ErrAppointmentNotFound = errors.New("feedback: appointment not found")

	// ErrAccessDenied возвращается, когда приём принадлежит другому пользователю
	ErrAccessDenied = errors.New("feedback: access denied")

	// ErrNotCompleted возвращается, когда отзыв оставляют на незавершённый приём
	ErrNotCompleted = errors.New("feedback: appointment is not completed")

	// ErrAlreadyExists возвращается при повторном отзыве
	ErrAlreadyExists = errors.New("feedback: feedback already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("feedback: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("feedback: internal error")
)
