package check_conflicts

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artel-platform/AOM-BookingService/internal/domain"
)

type fakeDetector struct {
	findings []domain.BookingConflict
	err      error

	gotOrgID      int64
	gotResourceID int64
	gotExclude    *int64
}

func (f *fakeDetector) CheckBookingConflicts(_ context.Context, organizationID, resourceID int64, _, _ time.Time, excludeBookingID *int64) ([]domain.BookingConflict, error) {
	f.gotOrgID = organizationID
	f.gotResourceID = resourceID
	f.gotExclude = excludeBookingID
	if f.err != nil {
		return nil, f.err
	}
	return f.findings, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, detector *fakeDetector, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/check", bytes.NewReader(raw))
	rec := httptest.NewRecorder()

	NewHandler(detector, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_NoConflicts(t *testing.T) {
	detector := &fakeDetector{}

	rec := doRequest(t, detector, CheckConflictsRequest{
		OrganizationID: 1,
		ResourceID:     10,
		StartTime:      "2026-04-15T10:00:00Z",
		EndTime:        "2026-04-15T12:00:00Z",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CheckConflictsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.HasConflicts)
	assert.Empty(t, resp.Conflicts)
	assert.Equal(t, int64(1), detector.gotOrgID)
	assert.Equal(t, int64(10), detector.gotResourceID)
	assert.Nil(t, detector.gotExclude)
}

func TestHandle_ConflictsFound(t *testing.T) {
	detector := &fakeDetector{
		findings: []domain.BookingConflict{
			{
				Type:     domain.ConflictDoubleBooking,
				Severity: domain.SeverityHigh,
				Message:  "ресурс уже забронирован в запрошенном окне (1 пересекающихся бронирований)",
			},
		},
	}

	rec := doRequest(t, detector, CheckConflictsRequest{
		OrganizationID: 1,
		ResourceID:     10,
		StartTime:      "2026-04-15T10:00:00Z",
		EndTime:        "2026-04-15T12:00:00Z",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CheckConflictsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.HasConflicts)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, string(domain.ConflictDoubleBooking), resp.Conflicts[0].ConflictType)
	assert.Equal(t, string(domain.SeverityHigh), resp.Conflicts[0].Severity)
}

func TestHandle_BadTimeWindow(t *testing.T) {
	tests := []struct {
		name string
		req  CheckConflictsRequest
	}{
		{
			name: "malformed start time",
			req: CheckConflictsRequest{
				OrganizationID: 1, ResourceID: 10,
				StartTime: "15.04.2026 10:00", EndTime: "2026-04-15T12:00:00Z",
			},
		},
		{
			name: "end before start",
			req: CheckConflictsRequest{
				OrganizationID: 1, ResourceID: 10,
				StartTime: "2026-04-15T12:00:00Z", EndTime: "2026-04-15T10:00:00Z",
			},
		},
		{
			name: "zero-width window",
			req: CheckConflictsRequest{
				OrganizationID: 1, ResourceID: 10,
				StartTime: "2026-04-15T10:00:00Z", EndTime: "2026-04-15T10:00:00Z",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeDetector{}, tt.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandle_InvalidIDs(t *testing.T) {
	rec := doRequest(t, &fakeDetector{}, CheckConflictsRequest{
		OrganizationID: 0,
		ResourceID:     10,
		StartTime:      "2026-04-15T10:00:00Z",
		EndTime:        "2026-04-15T12:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/check", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	NewHandler(&fakeDetector{}, nopLogger{}).Handle(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
