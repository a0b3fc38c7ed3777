package conflictlog

import "errors"

var (
	// ErrConflictNotFound возвращается, когда запись журнала конфликтов не найдена
	ErrConflictNotFound = errors.New("conflictlog.repository: conflict log not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("conflictlog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("conflictlog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("conflictlog.repository: failed to scan row")
)
