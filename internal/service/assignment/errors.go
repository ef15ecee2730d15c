package assignment

import "errors"

var (
	// ErrNoOfficersAvailable в отделе нет активных офицеров
	ErrNoOfficersAvailable = errors.New("assignment: no officers available")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("assignment: internal error")
)
