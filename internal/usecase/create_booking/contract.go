package create_booking

import (
	"context"
	"time"

	"github.com/artel-platform/AOM-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ConflictDetector интерфейс детектора конфликтов
type ConflictDetector interface {
	CheckBookingConflicts(ctx context.Context, organizationID, resourceID int64, start, end time.Time, excludeBookingID *int64) ([]domain.BookingConflict, error)
	LogConflict(ctx context.Context, organizationID, resourceID int64, conflictType domain.ConflictType, data domain.ConflictData, severity domain.ConflictSeverity) (*domain.ConflictLog, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
