package create_booking

import (
	"time"

	"github.com/artel-platform/AOM-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID         int64      // ID пользователя, создающего бронирование
	OrganizationID int64      // ID организации
	ResourceID     int64      // ID ресурса
	StartTime      time.Time  // Начало окна бронирования
	EndTime        time.Time  // Конец окна бронирования (исключительно)
	Participants   int        // Количество участников
	Notes          *string    // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             int64     // ID созданного бронирования
	OrganizationID int64     // ID организации
	ResourceID     int64     // ID ресурса
	CreatedBy      int64     // ID пользователя
	StartTime      time.Time // Начало окна
	EndTime        time.Time // Конец окна
	Status         string    // Статус бронирования

	CurrentParticipants int     // Количество участников
	Notes               *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

// fromDomainBooking конвертирует созданное бронирование в ответ usecase
func fromDomainBooking(b *domain.Booking) *Response {
	return &Response{
		ID:                  b.ID,
		OrganizationID:      b.OrganizationID,
		ResourceID:          b.ResourceID,
		CreatedBy:           b.CreatedBy,
		StartTime:           b.StartTime,
		EndTime:             b.EndTime,
		Status:              string(b.Status),
		CurrentParticipants: b.CurrentParticipants,
		Notes:               b.Notes,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}
