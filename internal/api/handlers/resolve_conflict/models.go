package resolve_conflict

import (
	"github.com/artel-platform/AOM-BookingService/internal/service/conflicts/models"
)

// ResolveConflictRequest HTTP request model
type ResolveConflictRequest struct {
	Resolution      string  `json:"resolution"`
	Status          *string `json:"status,omitempty"` // "resolved" (по умолчанию) или "ignored"
	ResolutionNotes *string `json:"resolutionNotes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ResolveConflictRequest) ToServiceRequest(userID int64) *models.ResolveConflictRequest {
	return &models.ResolveConflictRequest{
		UserID:          userID,
		Resolution:      r.Resolution,
		Status:          r.Status,
		ResolutionNotes: r.ResolutionNotes,
	}
}
