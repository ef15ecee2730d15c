package department

import "errors"

var (
	// ErrDepartmentNotFound возвращается, когда отдел не найден
	ErrDepartmentNotFound = errors.New("department.repository: department not found")

	// ErrInvalidWorkingHours возвращается, когда расписание в БД не удалось разобрать
	ErrInvalidWorkingHours = errors.New("department.repository: invalid working hours")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("department.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("department.repository: failed to scan row")
)
