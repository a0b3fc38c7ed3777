package domain

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxResolutionLength         = 500
	MaxResolutionNotesLength    = 1000
)

// ActiveStatuses статусы бронирований, занимающих ресурс
// Используются при поиске пересечений и подсчёте загрузки
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы бронирований, не занимающих ресурс
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

// ValidBookingStatuses все допустимые статусы бронирования
var ValidBookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
}

// IsValid проверяет, что статус бронирования допустим
func (s BookingStatus) IsValid() bool {
	for _, valid := range ValidBookingStatuses {
		if s == valid {
			return true
		}
	}
	return false
}
