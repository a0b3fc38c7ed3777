package log_conflict

import (
	"context"

	"github.com/artel-platform/AOM-BookingService/internal/service/conflicts/models"
)

type ConflictService interface {
	ReportConflict(ctx context.Context, req *models.ReportConflictRequest) (*models.ConflictResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
