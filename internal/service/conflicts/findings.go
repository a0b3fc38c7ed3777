package conflicts

import (
	"fmt"

	"github.com/artel-platform/AOM-BookingService/internal/domain"
)

// Фиксированные текстовые подсказки по разрешению двойного бронирования
// Это готовые формулировки для оператора, а не вычисленные альтернативы
var doubleBookingResolutions = []string{
	"выберите другое время",
	"выберите другой ресурс",
	"свяжитесь с владельцем существующего бронирования",
}

// doubleBookingFinding конфликт пересечения с активными бронированиями
// Серьёзность всегда high, не настраивается
func doubleBookingFinding(window *domain.TimeWindow, overlapping []*domain.Booking) domain.BookingConflict {
	refs := make([]domain.BookingRef, len(overlapping))
	for i, b := range overlapping {
		refs[i] = domain.ToBookingRef(b)
	}

	return domain.BookingConflict{
		Type:     domain.ConflictDoubleBooking,
		Severity: domain.SeverityHigh,
		Message: fmt.Sprintf("ресурс уже забронирован в запрошенном окне (%d пересекающихся бронирований)",
			len(overlapping)),
		ConflictingBookings:  overlapping,
		SuggestedResolutions: doubleBookingResolutions,
		Data: domain.ConflictData{
			Window:              window,
			ConflictingBookings: refs,
		},
	}
}

// resourceUnavailableFinding конфликт недоступности ресурса
// Серьёзность зависит от причины: не найден — critical, деактивирован — high,
// закрыт для бронирования — medium
func resourceUnavailableFinding(window *domain.TimeWindow, severity domain.ConflictSeverity, reason string, data domain.ConflictData) domain.BookingConflict {
	return domain.BookingConflict{
		Type:     domain.ConflictResourceUnavailable,
		Severity: severity,
		Message:  fmt.Sprintf("ресурс недоступен для бронирования: %s", reason),
		Data:     data,
	}
}

// capacityExceededFinding конфликт исчерпанной вместимости
// В сообщение входят численные значения загрузки и вместимости
func capacityExceededFinding(window *domain.TimeWindow, load, capacity int) domain.BookingConflict {
	return domain.BookingConflict{
		Type:     domain.ConflictCapacityExceeded,
		Severity: domain.SeverityMedium,
		Message: fmt.Sprintf("вместимость ресурса исчерпана: занято %d из %d мест в запрошенном окне",
			load, capacity),
		Data: domain.ConflictData{
			Window:      window,
			Capacity:    &capacity,
			CurrentLoad: &load,
		},
	}
}
