package timeslot

import "errors"

var (
	// ErrTimeSlotNotFound возвращается, когда слот не найден
	ErrTimeSlotNotFound = errors.New("timeslot.repository: time slot not found")

	// ErrSlotNotAvailable возвращается, когда счётчик слота изменился или ёмкость исчерпана
	ErrSlotNotAvailable = errors.New("timeslot.repository: slot not available")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("timeslot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("timeslot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("timeslot.repository: failed to scan row")
)
