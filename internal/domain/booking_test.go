package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(hour, min int) time.Time {
	return time.Date(2025, 11, 20, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		aStart   time.Time
		aEnd     time.Time
		bStart   time.Time
		bEnd     time.Time
		expected bool
	}{
		{
			name:   "полное пересечение",
			aStart: ts(10, 0), aEnd: ts(12, 0),
			bStart: ts(10, 0), bEnd: ts(12, 0),
			expected: true,
		},
		{
			name:   "частичное пересечение в начале",
			aStart: ts(9, 0), aEnd: ts(11, 0),
			bStart: ts(10, 0), bEnd: ts(12, 0),
			expected: true,
		},
		{
			name:   "частичное пересечение в конце",
			aStart: ts(11, 0), aEnd: ts(13, 0),
			bStart: ts(10, 0), bEnd: ts(12, 0),
			expected: true,
		},
		{
			name:   "вложенный интервал",
			aStart: ts(10, 30), aEnd: ts(11, 30),
			bStart: ts(10, 0), bEnd: ts(12, 0),
			expected: true,
		},
		{
			name:   "бронирования впритык не пересекаются",
			aStart: ts(9, 0), aEnd: ts(10, 0),
			bStart: ts(10, 0), bEnd: ts(11, 0),
			expected: false,
		},
		{
			name:   "бронирования впритык в обратном порядке",
			aStart: ts(11, 0), aEnd: ts(12, 0),
			bStart: ts(10, 0), bEnd: ts(11, 0),
			expected: false,
		},
		{
			name:   "непересекающиеся интервалы",
			aStart: ts(8, 0), aEnd: ts(9, 0),
			bStart: ts(10, 0), bEnd: ts(11, 0),
			expected: false,
		},
		{
			name:   "окно нулевой ширины ни с чем не пересекается",
			aStart: ts(10, 30), aEnd: ts(10, 30),
			bStart: ts(10, 0), bEnd: ts(12, 0),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Пересечение симметрично
			assert.Equal(t, tt.expected, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).IsActive())
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
}

func TestConflictEnums_IsValid(t *testing.T) {
	assert.True(t, ConflictDoubleBooking.IsValid())
	assert.True(t, SeverityCritical.IsValid())
	assert.True(t, ConflictIgnored.IsValid())

	assert.False(t, ConflictType("overbooked").IsValid())
	assert.False(t, ConflictSeverity("fatal").IsValid())
	assert.False(t, ConflictStatus("closed").IsValid())
}
