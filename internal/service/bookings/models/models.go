package models

import (
	"errors"
	"time"

	"github.com/artel-platform/AOM-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// UpdateParticipantsRequest запрос на изменение количества участников
type UpdateParticipantsRequest struct {
	UserID              int64 `json:"userId"`
	CurrentParticipants int   `json:"currentParticipants"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetOrganizationBookingsRequest запрос на получение бронирований организации
type GetOrganizationBookingsRequest struct {
	UserID          int64      `json:"userId"`
	OrganizationID  int64      `json:"organizationId"`
	ResourceID      *int64     `json:"resourceId,omitempty"`      // Фильтр по ресурсу (опционально)
	From            *time.Time `json:"from,omitempty"`            // Начало периода (опционально)
	To              *time.Time `json:"to,omitempty"`              // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetOrganizationBookingsRequest) ToDomainFilter() (domain.OrganizationBookingsFilter, error) {
	filter := domain.OrganizationBookingsFilter{
		OrganizationID:  r.OrganizationID,
		ResourceID:      r.ResourceID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             int64  `json:"id"`
	OrganizationID int64  `json:"organizationId"`
	ResourceID     int64  `json:"resourceId"`
	CreatedBy      int64  `json:"createdBy"`
	StartTime      string `json:"startTime"` // ISO 8601
	EndTime        string `json:"endTime"`   // ISO 8601
	Status         string `json:"status"`

	CurrentParticipants int     `json:"currentParticipants"`
	Notes               *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                  b.ID,
		OrganizationID:      b.OrganizationID,
		ResourceID:          b.ResourceID,
		CreatedBy:           b.CreatedBy,
		StartTime:           b.StartTime.Format(time.RFC3339),
		EndTime:             b.EndTime.Format(time.RFC3339),
		Status:              string(b.Status),
		CurrentParticipants: b.CurrentParticipants,
		Notes:               b.Notes,
		CancellationReason:  b.CancellationReason,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if converted := FromDomainBooking(booking); converted != nil {
			resp.Bookings[i] = *converted
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
