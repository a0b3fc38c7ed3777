package get_organization_bookings

import (
	"strconv"
	"time"

	"github.com/artel-platform/AOM-BookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос к сервису из path и query параметров
func ToServiceRequest(organizationID, userID int64, resourceIDStr, statusStr, fromStr, toStr, includeInactiveStr string) (*models.GetOrganizationBookingsRequest, error) {
	req := &models.GetOrganizationBookingsRequest{
		UserID:         userID,
		OrganizationID: organizationID,
	}

	if resourceIDStr != "" {
		resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ResourceID = &resourceID
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
