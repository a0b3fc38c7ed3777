package get_organization_bookings

import (
	"context"

	"github.com/artel-platform/AOM-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetOrganizationBookings(ctx context.Context, req *models.GetOrganizationBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
