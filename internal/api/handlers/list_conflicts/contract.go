package list_conflicts

import (
	"context"

	"github.com/artel-platform/AOM-BookingService/internal/service/conflicts/models"
)

type ConflictService interface {
	ListConflicts(ctx context.Context, req *models.ListConflictsRequest) (*models.ConflictListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
