package log_conflict

import (
	"github.com/artel-platform/AOM-BookingService/internal/service/conflicts/models"
)

// LogConflictRequest HTTP request model
type LogConflictRequest struct {
	ResourceID   int64   `json:"resourceId"`
	ConflictType string  `json:"conflictType"`
	Severity     *string `json:"severity,omitempty"`    // По умолчанию medium
	Description  *string `json:"description,omitempty"` // Произвольное описание оператора
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *LogConflictRequest) ToServiceRequest(organizationID, userID int64) *models.ReportConflictRequest {
	return &models.ReportConflictRequest{
		UserID:         userID,
		OrganizationID: organizationID,
		ResourceID:     r.ResourceID,
		ConflictType:   r.ConflictType,
		Severity:       r.Severity,
		Description:    r.Description,
	}
}
