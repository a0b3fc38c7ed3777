package check_conflicts

import (
	"errors"
	"time"

	"github.com/artel-platform/AOM-BookingService/internal/domain"
)

var errInvalidTimeRange = errors.New("start time must be strictly before end time")

// CheckConflictsRequest HTTP request model
// Сухая проверка: данные не изменяются, результат не записывается в журнал
type CheckConflictsRequest struct {
	OrganizationID   int64  `json:"organizationId"`
	ResourceID       int64  `json:"resourceId"`
	StartTime        string `json:"startTime"` // RFC 3339
	EndTime          string `json:"endTime"`   // RFC 3339
	ExcludeBookingID *int64 `json:"excludeBookingId,omitempty"`
}

type parsedRequest struct {
	start time.Time
	end   time.Time
}

// parse разбирает и валидирует временное окно
func (r *CheckConflictsRequest) parse() (*parsedRequest, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	if !start.Before(end) {
		return nil, errInvalidTimeRange
	}

	return &parsedRequest{start: start, end: end}, nil
}

// ConflictItem один найденный конфликт
type ConflictItem struct {
	ConflictType         string              `json:"conflictType"`
	Severity             string              `json:"severity"`
	Message              string              `json:"message"`
	SuggestedResolutions []string            `json:"suggestedResolutions,omitempty"`
	ConflictData         domain.ConflictData `json:"conflictData"`
}

// CheckConflictsResponse результат проверки
type CheckConflictsResponse struct {
	HasConflicts bool           `json:"hasConflicts"`
	Conflicts    []ConflictItem `json:"conflicts"`
}

// FromDomainFindings конвертирует находки детектора в HTTP response
func FromDomainFindings(findings []domain.BookingConflict) *CheckConflictsResponse {
	resp := &CheckConflictsResponse{
		HasConflicts: len(findings) > 0,
		Conflicts:    make([]ConflictItem, len(findings)),
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
