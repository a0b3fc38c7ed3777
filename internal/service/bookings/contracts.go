package bookings

import (
	"context"

	"github.com/artel-platform/AOM-BookingService/internal/domain"
	"github.com/artel-platform/AOM-BookingService/internal/integrations/orgservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByOrganizationWithFilter(ctx context.Context, filter domain.OrganizationBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpdateParticipants(ctx context.Context, id int64, participants int) error
	Cancel(ctx context.Context, id int64, reason string) error
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
