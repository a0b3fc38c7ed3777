package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a reservation of a resource for a time interval
type Booking struct {
	ID             int64
	OrganizationID int64
	ResourceID     int64
	CreatedBy      int64 // ID пользователя, создавшего бронирование

	StartTime time.Time
	EndTime   time.Time
	Status    BookingStatus

	// Текущее количество участников, занимающих вместимость ресурса
	CurrentParticipants int

	Notes *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies the resource
// (учитывается при поиске пересечений и подсчёте загрузки)
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Overlaps проверяет пересечение бронирования с интервалом [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return Overlaps(b.StartTime, b.EndTime, start, end)
}

// Overlaps проверяет пересечение полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd)
// Интервалы, соприкасающиеся границами, пересечением не считаются:
// бронирования "впритык" допустимы
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// OrganizationBookingsFilter фильтр для получения бронирований организации
type OrganizationBookingsFilter struct {
	OrganizationID  int64          // Обязательный параметр
	ResourceID      *int64         // Фильтр по ресурсу (опционально)
	From            *time.Time     // Начало периода (опционально)
	To              *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые бронирования
}
