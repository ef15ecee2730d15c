package domain

import "errors"

var (
	// ErrSlotFullyBooked все места в слоте заняты
	ErrSlotFullyBooked = errors.New("domain: time slot is fully booked")

	// ErrSlotNotBookable слот заблокирован или приходится на праздник
	ErrSlotNotBookable = errors.New("domain: time slot is not bookable")

	// ErrInvalidTransition недопустимый переход статуса приёма
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrUnknownStatus неизвестный статус приёма
	ErrUnknownStatus = errors.New("domain: unknown appointment status")

	// ErrInvalidDocument файл пустой, слишком большой или недопустимого типа
	ErrInvalidDocument = errors.New("domain: invalid document")

	// ErrUnknownDocumentStatus решение по документу не APPROVED и не REJECTED
	ErrUnknownDocumentStatus = errors.New("domain: unknown document status")
)
