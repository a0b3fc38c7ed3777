package conflicts

import "errors"

var (
	// ErrConflictNotFound возвращается, когда запись журнала конфликтов не найдена
	ErrConflictNotFound = errors.New("conflict log not found")

	// ErrOrganizationNotFound возвращается, когда организация не найдена
	ErrOrganizationNotFound = errors.New("organization not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrAlreadyResolved возвращается при попытке повторно разрешить запись,
	// уже находящуюся в терминальном статусе
	ErrAlreadyResolved = errors.New("conflict log is already resolved")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	// Вызывающий код обязан трактовать её как "статус конфликтов неизвестен",
	// а не как отсутствие конфликтов
	ErrInternal = errors.New("conflicts service: internal error")
)
