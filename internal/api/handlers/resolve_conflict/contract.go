package resolve_conflict

import (
	"context"

	"github.com/artel-platform/AOM-BookingService/internal/service/conflicts/models"
)

type ConflictService interface {
	ResolveConflict(ctx context.Context, conflictID int64, req *models.ResolveConflictRequest) (*models.ConflictResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
