package create_booking

import (
	"errors"
	"fmt"

	"github.com/artel-platform/AOM-BookingService/internal/domain"
)

var (
	// ErrBookingConflict возвращается, когда детектор нашёл хотя бы один конфликт
	// Конкретные конфликты доступны через errors.As к *ConflictsError
	ErrBookingConflict = errors.New("create_booking: booking conflicts detected")

	// ErrInvalidTimeRange возвращается, когда начало окна не раньше его конца
	// Окно нулевой или отрицательной ширины отклоняется до вызова детектора:
	// математика пересечений на таком окне даёт бессмысленное "нет конфликтов"
	ErrInvalidTimeRange = errors.New("create_booking: invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ConflictsError ошибка создания бронирования с найденными конфликтами
// Несёт список конфликтов для тела ответа 409
type ConflictsError struct {
	Findings []domain.BookingConflict
}

// Error реализует интерфейс error
func (e *ConflictsError) Error() string {
	return fmt.Sprintf("create_booking: %d booking conflict(s) detected", len(e.Findings))
}

// Unwrap позволяет errors.Is(err, ErrBookingConflict)
func (e *ConflictsError) Unwrap() error {
	return ErrBookingConflict
}
