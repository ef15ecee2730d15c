package officer

import "errors"

var (
	// ErrOfficerNotFound возвращается, когда офицер не найден
	ErrOfficerNotFound = errors.New("officer.repository: officer not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("officer.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("officer.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("officer.repository: failed to scan row")
)
