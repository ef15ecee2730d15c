package documents

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда приём не найден
	ErrAppointmentNotFound = errors.New("documents: appointment not found")

	// ErrDocumentNotFound возвращается, когда документ не найден
	ErrDocumentNotFound = errors.New("documents: document not found")

	// ErrAccessDenied возвращается, когда приём или документ принадлежит другому пользователю
	ErrAccessDenied = errors.New("documents: access denied")

	// ErrInvalidDocument возвращается, когда файл не проходит проверку размера или типа
	ErrInvalidDocument = errors.New("documents: invalid document")

	// ErrOfficerNotFound возвращается, когда офицер не найден или неактивен
	ErrOfficerNotFound = errors.New("documents: officer not found")

	// ErrInvalidDecision возвращается, когда решение по документу не APPROVED и не REJECTED
	ErrInvalidDecision = errors.New("documents: invalid decision")

	// ErrUploadFailure возвращается, когда хранилище не приняло файл
	ErrUploadFailure = errors.New("documents: upload failure")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("documents: internal error")
)
