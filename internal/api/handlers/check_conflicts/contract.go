package check_conflicts

import (
	"context"
	"time"

	"github.com/artel-platform/AOM-BookingService/internal/domain"
)

type ConflictDetector interface {
	CheckBookingConflicts(ctx context.Context, organizationID, resourceID int64, start, end time.Time, excludeBookingID *int64) ([]domain.BookingConflict, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
