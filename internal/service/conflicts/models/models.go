package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/artel-platform/AOM-BookingService/internal/domain"
)

var (
	// ErrInvalidConflictType возвращается при некорректном виде конфликта
	ErrInvalidConflictType = errors.New("invalid conflict type")

	// ErrInvalidSeverity возвращается при некорректной серьёзности
	ErrInvalidSeverity = errors.New("invalid conflict severity")

	// ErrInvalidStatus возвращается при некорректном статусе записи журнала
	ErrInvalidStatus = errors.New("invalid conflict status")
)

// Request модели

// ReportConflictRequest запрос на ручную регистрацию конфликта
type ReportConflictRequest struct {
	UserID         int64   `json:"userId"`
	OrganizationID int64   `json:"organizationId"`
	ResourceID     int64   `json:"resourceId"`
	ConflictType   string  `json:"conflictType"`
	Severity       *string `json:"severity,omitempty"`    // По умолчанию medium
	Description    *string `json:"description,omitempty"` // Произвольное описание оператора
}

// ListConflictsRequest запрос журнала конфликтов организации
type ListConflictsRequest struct {
	UserID         int64   `json:"userId"`
	OrganizationID int64   `json:"organizationId"`
	Status         *string `json:"status,omitempty"`   // Фильтр по статусу (опционально)
	Severity       *string `json:"severity,omitempty"` // Фильтр по серьёзности (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListConflictsRequest) ToDomainFilter() (domain.ConflictLogFilter, error) {
	filter := domain.ConflictLogFilter{
		OrganizationID: r.OrganizationID,
	}

	if r.Status != nil {
		status, err := ToDomainConflictStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.Severity != nil {
		severity, err := ToDomainConflictSeverity(*r.Severity)
		if err != nil {
			return filter, err
		}
		filter.Severity = &severity
	}

	return filter, nil
}

// ResolveConflictRequest запрос на разрешение конфликта
type ResolveConflictRequest struct {
	UserID          int64   `json:"userId"`
	Resolution      string  `json:"resolution"`
	Status          *string `json:"status,omitempty"` // "resolved" (по умолчанию) или "ignored"
	ResolutionNotes *string `json:"resolutionNotes,omitempty"`
}

// Validate проверяет корректность запроса на разрешение
func (r *ResolveConflictRequest) Validate() error {
	if r.Resolution == "" {
		return errors.New("resolution is required")
	}
	if len(r.Resolution) > domain.MaxResolutionLength {
		return fmt.Errorf("resolution is longer than %d characters", domain.MaxResolutionLength)
	}
	if r.ResolutionNotes != nil && len(*r.ResolutionNotes) > domain.MaxResolutionNotesLength {
		return fmt.Errorf("resolution notes are longer than %d characters", domain.MaxResolutionNotesLength)
	}
	return nil
}

// TargetStatus возвращает терминальный статус разрешения
// Допустимы только resolved (по умолчанию) и ignored
func (r *ResolveConflictRequest) TargetStatus() (domain.ConflictStatus, error) {
	if r.Status == nil {
		return domain.ConflictResolved, nil
	}

	status, err := ToDomainConflictStatus(*r.Status)
	if err != nil {
		return "", err
	}

	if status != domain.ConflictResolved && status != domain.ConflictIgnored {
		return "", fmt.Errorf("%w: %q is not a terminal status", ErrInvalidStatus, status)
	}

	return status, nil
}

// GetConflictStatsRequest запрос статистики журнала конфликтов
type GetConflictStatsRequest struct {
	UserID         int64 `json:"userId"`
	OrganizationID int64 `json:"organizationId"`
}

// Response модели

// ResourceRefResponse минимальная идентификация ресурса для отображения
type ResourceRefResponse struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	ResourceType string `json:"resourceType"`
}

// ConflictResponse ответ с записью журнала конфликтов
type ConflictResponse struct {
	ID             int64  `json:"id"`
	OrganizationID int64  `json:"organizationId"`
	ResourceID     int64  `json:"resourceId"`
	ConflictType   string `json:"conflictType"`
	Severity       string `json:"severity"`
	Status         string `json:"status"`

	ConflictData domain.ConflictData `json:"conflictData"`

	Resolution      *string `json:"resolution,omitempty"`
	ResolvedAt      *string `json:"resolvedAt,omitempty"` // ISO 8601
	ResolvedBy      *int64  `json:"resolvedBy,omitempty"`
	ResolutionNotes *string `json:"resolutionNotes,omitempty"`

	Resource *ResourceRefResponse `json:"resource,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ConflictListResponse ответ со списком записей журнала
type ConflictListResponse struct {
	Conflicts []ConflictResponse `json:"conflicts"`
}

// ConflictStatsResponse агрегированная статистика журнала конфликтов
type ConflictStatsResponse struct {
	Total      int            `json:"total"`
	Open       int            `json:"open"`
	Resolved   int            `json:"resolved"`
	ByType     map[string]int `json:"byType"`
	BySeverity map[string]int `json:"bySeverity"`
}

// Методы конвертации

// FromDomainConflict конвертирует domain модель в DTO
func FromDomainConflict(c *domain.ConflictLog) *ConflictResponse {
	if c == nil {
		return nil
	}

	resp := &ConflictResponse{
		ID:              c.ID,
		OrganizationID:  c.OrganizationID,
		ResourceID:      c.ResourceID,
		ConflictType:    string(c.Type),
		Severity:        string(c.Severity),
		Status:          string(c.Status),
		ConflictData:    c.Data,
		Resolution:      c.Resolution,
		ResolvedBy:      c.ResolvedBy,
		ResolutionNotes: c.ResolutionNotes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}

	if c.ResolvedAt != nil {
		resolvedStr := c.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &resolvedStr
	}

	if c.Resource != nil {
		resp.Resource = &ResourceRefResponse{
			ID:           c.Resource.ID,
			Title:        c.Resource.Title,
			ResourceType: c.Resource.ResourceType,
		}
	}

	return resp
}

// FromDomainConflictList конвертирует список domain моделей в DTO
func FromDomainConflictList(logs []*domain.ConflictLog) *ConflictListResponse {
	resp := &ConflictListResponse{
		Conflicts: make([]ConflictResponse, 0, len(logs)),
	}

	for _, log := range logs {
		if converted := FromDomainConflict(log); converted != nil {
			resp.Conflicts = append(resp.Conflicts, *converted)
		}
	}

	return resp
}

// FromDomainConflictStats конвертирует статистику в DTO
func FromDomainConflictStats(stats domain.ConflictStats) *ConflictStatsResponse {
	resp := &ConflictStatsResponse{
		Total:      stats.Total,
		Open:       stats.Open,
		Resolved:   stats.Resolved,
		ByType:     make(map[string]int, len(stats.ByType)),
		BySeverity: make(map[string]int, len(stats.BySeverity)),
	}

	for t, count := range stats.ByType {
		resp.ByType[string(t)] = count
	}
	for s, count := range stats.BySeverity {
		resp.BySeverity[string(s)] = count
	}

	return resp
}

// ToDomainConflictType конвертирует строку в domain.ConflictType с валидацией
func ToDomainConflictType(value string) (domain.ConflictType, error) {
	t := domain.ConflictType(value)
	if !t.IsValid() {
		return "", ErrInvalidConflictType
	}
	return t, nil
}

// ToDomainConflictSeverity конвертирует строку в domain.ConflictSeverity с валидацией
func ToDomainConflictSeverity(value string) (domain.ConflictSeverity, error) {
	s := domain.ConflictSeverity(value)
	if !s.IsValid() {
		return "", ErrInvalidSeverity
	}
	return s, nil
}

// ToDomainConflictStatus конвертирует строку в domain.ConflictStatus с валидацией
func ToDomainConflictStatus(value string) (domain.ConflictStatus, error) {
	s := domain.ConflictStatus(value)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
