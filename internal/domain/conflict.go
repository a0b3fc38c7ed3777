package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ConflictType вид обнаруженного конфликта бронирования
type ConflictType string

const (
	ConflictDoubleBooking       ConflictType = "double_booking"
	ConflictTimezoneMismatch    ConflictType = "timezone_mismatch"
	ConflictResourceUnavailable ConflictType = "resource_unavailable"
	ConflictCapacityExceeded    ConflictType = "capacity_exceeded"
)

// ConflictSeverity серьёзность конфликта
type ConflictSeverity string

const (
	SeverityLow      ConflictSeverity = "low"
	SeverityMedium   ConflictSeverity = "medium"
	SeverityHigh     ConflictSeverity = "high"
	SeverityCritical ConflictSeverity = "critical"
)

// ConflictStatus статус записи в журнале конфликтов
// Жизненный цикл: open -> investigating -> resolved | ignored
type ConflictStatus string

const (
	ConflictOpen          ConflictStatus = "open"
	ConflictInvestigating ConflictStatus = "investigating"
	ConflictResolved      ConflictStatus = "resolved"
	ConflictIgnored       ConflictStatus = "ignored"
)

// ValidConflictTypes все допустимые виды конфликтов
var ValidConflictTypes = []ConflictType{
	ConflictDoubleBooking,
	ConflictTimezoneMismatch,
	ConflictResourceUnavailable,
	ConflictCapacityExceeded,
}

// ValidConflictSeverities все допустимые уровни серьёзности
var ValidConflictSeverities = []ConflictSeverity{
	SeverityLow,
	SeverityMedium,
	SeverityHigh,
	SeverityCritical,
}

// ValidConflictStatuses все допустимые статусы записи журнала
var ValidConflictStatuses = []ConflictStatus{
	ConflictOpen,
	ConflictInvestigating,
	ConflictResolved,
	ConflictIgnored,
}

// IsValid проверяет, что вид конфликта допустим
func (t ConflictType) IsValid() bool {
	for _, valid := range ValidConflictTypes {
		if t == valid {
			return true
		}
	}
	return false
}

// IsValid проверяет, что уровень серьёзности допустим
func (s ConflictSeverity) IsValid() bool {
	for _, valid := range ValidConflictSeverities {
		if s == valid {
			return true
		}
	}
	return false
}

// IsValid проверяет, что статус записи журнала допустим
func (s ConflictStatus) IsValid() bool {
	for _, valid := range ValidConflictStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// TimeWindow запрошенное окно бронирования [Start, End)
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BookingRef краткие сведения о бронировании для payload конфликта
type BookingRef struct {
	ID                  int64         `json:"id"`
	StartTime           time.Time     `json:"startTime"`
	EndTime             time.Time     `json:"endTime"`
	Status              BookingStatus `json:"status"`
	CurrentParticipants int           `json:"currentParticipants"`
}

// ToBookingRef конвертирует бронирование в краткую ссылку
func ToBookingRef(b *Booking) BookingRef {
	return BookingRef{
		ID:                  b.ID,
		StartTime:           b.StartTime,
		EndTime:             b.EndTime,
		Status:              b.Status,
		CurrentParticipants: b.CurrentParticipants,
	}
}

// ConflictData структурированный payload конфликта
// Для каждого вида конфликта заполняется свой набор полей:
//   - double_booking: Window + ConflictingBookings
//   - resource_unavailable: Window + ResourceMissing / ResourceInactive / ResourceNotBookable
//   - capacity_exceeded: Window + Capacity + CurrentLoad
//   - ручная регистрация: Description
//
// Хранится в колонке conflict_data (JSONB)
type ConflictData struct {
	Window *TimeWindow `json:"window,omitempty"`

	ConflictingBookings []BookingRef `json:"conflictingBookings,omitempty"`

	ResourceMissing     bool `json:"resourceMissing,omitempty"`
	ResourceInactive    bool `json:"resourceInactive,omitempty"`
	ResourceNotBookable bool `json:"resourceNotBookable,omitempty"`

	Capacity    *int `json:"capacity,omitempty"`
	CurrentLoad *int `json:"currentLoad,omitempty"`

	Description *string `json:"description,omitempty"`
}

// Value сериализует payload в JSONB
func (d ConflictData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan десериализует payload из JSONB
func (d *ConflictData) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ConflictData{}
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("domain: cannot scan conflict_data from %T", src)
	}
}

// BookingConflict результат одной проверки детектора конфликтов
type BookingConflict struct {
	Type     ConflictType
	Severity ConflictSeverity
	Message  string

	// Бронирования, с которыми пересекается запрошенное окно
	// (заполняется только для double_booking)
	ConflictingBookings []*Booking

	// Фиксированные текстовые подсказки по разрешению конфликта
	SuggestedResolutions []string

	// Типизированный payload для записи в журнал конфликтов
	Data ConflictData
}

// ConflictLog запись журнала конфликтов
type ConflictLog struct {
	ID             int64
	OrganizationID int64
	ResourceID     int64

	Type     ConflictType
	Data     ConflictData
	Severity ConflictSeverity
	Status   ConflictStatus

	Resolution      *string
	ResolvedAt      *time.Time
	ResolvedBy      *int64
	ResolutionNotes *string

	// Минимальная идентификация ресурса (заполняется при выборке списка)
	Resource *ResourceRef

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConflictLogFilter фильтр журнала конфликтов организации
type ConflictLogFilter struct {
	OrganizationID int64             // Обязательный параметр
	Status         *ConflictStatus   // Фильтр по статусу (опционально)
	Severity       *ConflictSeverity // Фильтр по серьёзности (опционально)
}

// ConflictStats агрегированная статистика журнала конфликтов организации
// Open и Resolved считаются только по соответствующим статусам:
// investigating и ignored входят лишь в Total
type ConflictStats struct {
	Total      int
	Open       int
	Resolved   int
	ByType     map[ConflictType]int
	BySeverity map[ConflictSeverity]int
}
