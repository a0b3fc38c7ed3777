package create_booking

import (
	"time"

	"github.com/artel-platform/AOM-BookingService/internal/domain"
	createBooking "github.com/artel-platform/AOM-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	OrganizationID int64   `json:"organizationId"`
	ResourceID     int64   `json:"resourceId"`
	StartTime      string  `json:"startTime"` // RFC 3339, например "2026-04-15T10:00:00Z"
	EndTime        string  `json:"endTime"`   // RFC 3339
	Participants   int     `json:"participants"`
	Notes          *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             int64   `json:"id"`
	OrganizationID int64   `json:"organizationId"`
	ResourceID     int64   `json:"resourceId"`
	CreatedBy      int64   `json:"createdBy"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	Status         string  `json:"status"`
	Participants   int     `json:"currentParticipants"`
	Notes          *string `json:"notes,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ConflictItem один найденный конфликт в теле ответа 409
type ConflictItem struct {
	ConflictType         string              `json:"conflictType"`
	Severity             string              `json:"severity"`
	Message              string              `json:"message"`
	SuggestedResolutions []string            `json:"suggestedResolutions,omitempty"`
	ConflictData         domain.ConflictData `json:"conflictData"`
}

// ConflictsResponse тело ответа 409 со списком конфликтов
type ConflictsResponse struct {
	Error     string         `json:"error"`
	Conflicts []ConflictItem `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:         userID,
		OrganizationID: r.OrganizationID,
		ResourceID:     r.ResourceID,
		StartTime:      startTime,
		EndTime:        endTime,
		Participants:   r.Participants,
		Notes:          r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID,
		OrganizationID: resp.OrganizationID,
		ResourceID:     resp.ResourceID,
		CreatedBy:      resp.CreatedBy,
		StartTime:      resp.StartTime.Format(time.RFC3339),
		EndTime:        resp.EndTime.Format(time.RFC3339),
		Status:         resp.Status,
		Participants:   resp.CurrentParticipants,
		Notes:          resp.Notes,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}

// FromConflictFindings конвертирует находки детектора в тело ответа 409
func FromConflictFindings(message string, findings []domain.BookingConflict) *ConflictsResponse {
	resp := &ConflictsResponse{
		Error:     message,
		Conflicts: make([]ConflictItem, len(findings)),
	}

	for i, f := range findings {
		resp.Conflicts[i] = ConflictItem{
			ConflictType:         string(f.Type),
			Severity:             string(f.Severity),
			Message:              f.Message,
			SuggestedResolutions: f.SuggestedResolutions,
			ConflictData:         f.Data,
		}
	}

	return resp
}
