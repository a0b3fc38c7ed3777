package conflicts

import (
	"context"
	"time"

	"github.com/artel-platform/AOM-BookingService/internal/domain"
	"github.com/artel-platform/AOM-BookingService/internal/integrations/orgservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetOverlapping(ctx context.Context, organizationID, resourceID int64, start, end time.Time, excludeID *int64) ([]*domain.Booking, error)
	SumParticipants(ctx context.Context, organizationID, resourceID int64, start, end time.Time, excludeID *int64) (int, error)
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}

// ConflictLogRepository интерфейс репозитория журнала конфликтов
type ConflictLogRepository interface {
	Create(ctx context.Context, log *domain.ConflictLog) (*domain.ConflictLog, error)
	GetByID(ctx context.Context, id int64) (*domain.ConflictLog, error)
	Resolve(ctx context.Context, id int64, status domain.ConflictStatus, resolution string, resolvedBy int64, notes *string) error
	GetByOrganizationWithFilter(ctx context.Context, filter domain.ConflictLogFilter) ([]*domain.ConflictLog, error)
}

// OrgServiceClient интерфейс клиента для OrgService
type OrgServiceClient interface {
	GetOrganization(ctx context.Context, organizationID int64) (*orgservice.Organization, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
