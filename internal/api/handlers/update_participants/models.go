package update_participants

import (
	"github.com/artel-platform/AOM-BookingService/internal/service/bookings/models"
)

// UpdateParticipantsRequest HTTP request model
type UpdateParticipantsRequest struct {
	CurrentParticipants int `json:"currentParticipants"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateParticipantsRequest) ToServiceRequest(userID int64) *models.UpdateParticipantsRequest {
	return &models.UpdateParticipantsRequest{
		UserID:              userID,
		CurrentParticipants: r.CurrentParticipants,
	}
}
