package domain

import "time"

// Resource represents a bookable entity of an organization
// (помещение, оборудование, слот специалиста)
type Resource struct {
	ID             int64
	OrganizationID int64
	Title          string
	ResourceType   string

	// Максимальная суммарная вместимость по участникам
	// nil означает отсутствие ограничения
	Capacity *int

	IsActive   bool
	IsBookable bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AcceptsBookings returns true if the resource can accept new bookings
func (r *Resource) AcceptsBookings() bool {
	return r.IsActive && r.IsBookable
}

// ResourceRef минимальная идентификация ресурса для отображения
// (используется в списках конфликтов)
type ResourceRef struct {
	ID           int64
	Title        string
	ResourceType string
}
