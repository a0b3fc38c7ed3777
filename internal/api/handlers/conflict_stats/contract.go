package conflict_stats

import (
	"context"

	"github.com/artel-platform/AOM-BookingService/internal/service/conflicts/models"
)

type ConflictService interface {
	GetConflictStats(ctx context.Context, req *models.GetConflictStatsRequest) (*models.ConflictStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
