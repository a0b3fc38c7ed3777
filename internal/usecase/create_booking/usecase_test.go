package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artel-platform/AOM-BookingService/internal/domain"
	"github.com/artel-platform/AOM-BookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	created   []*domain.Booking
	createErr error
	nextID    int64
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	out := *b
	out.ID = f.nextID
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	f.created = append(f.created, &out)
	return &out, nil
}

type fakeDetector struct {
	findings []domain.BookingConflict
	checkErr error
	logged   []domain.ConflictType
	logErr   error
}

func (f *fakeDetector) CheckBookingConflicts(_ context.Context, _, _ int64, _, _ time.Time, _ *int64) ([]domain.BookingConflict, error) {
	if f.checkErr != nil {
		return nil, f.checkErr
	}
	return f.findings, nil
}

func (f *fakeDetector) LogConflict(_ context.Context, _, _ int64, conflictType domain.ConflictType, _ domain.ConflictData, _ domain.ConflictSeverity) (*domain.ConflictLog, error) {
	if f.logErr != nil {
		return nil, f.logErr
	}
	f.logged = append(f.logged, conflictType)
	return &domain.ConflictLog{ID: int64(len(f.logged)), Type: conflictType}, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validRequest() *Request {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	return &Request{
		UserID:         42,
		OrganizationID: 1,
		ResourceID:     7,
		StartTime:      start,
		EndTime:        start.Add(2 * time.Hour),
		Participants:   3,
	}
}

func TestExecute_CreatesBookingWhenNoConflicts(t *testing.T) {
	repo := &fakeBookingRepo{}
	detector := &fakeDetector{}
	uc := NewUseCase(repo, detector, fakeTxManager{}, nopLogger{}, true)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, 3, resp.CurrentParticipants)
	require.Len(t, repo.created, 1)
	assert.Equal(t, int64(42), repo.created[0].CreatedBy)
	assert.Empty(t, detector.logged)
}

func TestExecute_RejectsOnConflicts(t *testing.T) {
	repo := &fakeBookingRepo{}
	detector := &fakeDetector{
		findings: []domain.BookingConflict{
			{Type: domain.ConflictDoubleBooking, Severity: domain.SeverityHigh},
			{Type: domain.ConflictCapacityExceeded, Severity: domain.SeverityMedium},
		},
	}
	uc := NewUseCase(repo, detector, fakeTxManager{}, nopLogger{}, true)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, ErrBookingConflict))

	var conflictsErr *ConflictsError
	require.True(t, errors.As(err, &conflictsErr))
	require.Len(t, conflictsErr.Findings, 2)
	assert.Equal(t, domain.ConflictDoubleBooking, conflictsErr.Findings[0].Type)

	// Бронирование не создано, конфликты записаны в журнал
	assert.Empty(t, repo.created)
	assert.Equal(t, []domain.ConflictType{domain.ConflictDoubleBooking, domain.ConflictCapacityExceeded}, detector.logged)
}

func TestExecute_SkipsLoggingWhenDisabled(t *testing.T) {
	repo := &fakeBookingRepo{}
	detector := &fakeDetector{
		findings: []domain.BookingConflict{
			{Type: domain.ConflictDoubleBooking, Severity: domain.SeverityHigh},
		},
	}
	uc := NewUseCase(repo, detector, fakeTxManager{}, nopLogger{}, false)

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.Empty(t, detector.logged)
}

func TestExecute_LoggingFailureDoesNotChangeResult(t *testing.T) {
	repo := &fakeBookingRepo{}
	detector := &fakeDetector{
		findings: []domain.BookingConflict{
			{Type: domain.ConflictDoubleBooking, Severity: domain.SeverityHigh},
		},
		logErr: errors.New("journal unavailable"),
	}
	uc := NewUseCase(repo, detector, fakeTxManager{}, nopLogger{}, true)

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBookingConflict))
}

func TestExecute_Validation(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{
			name:    "zero organization id",
			mutate:  func(req *Request) { req.OrganizationID = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative resource id",
			mutate:  func(req *Request) { req.ResourceID = -5 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero user id",
			mutate:  func(req *Request) { req.UserID = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero-width window",
			mutate:  func(req *Request) { req.EndTime = req.StartTime },
			wantErr: ErrInvalidTimeRange,
		},
		{
			name: "end before start",
			mutate: func(req *Request) {
				req.StartTime = start.Add(time.Hour)
				req.EndTime = start
			},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "negative participants",
			mutate:  func(req *Request) { req.Participants = -1 },
			wantErr: ErrInvalidInput,
		},
		{
			name: "notes too long",
			mutate: func(req *Request) {
				long := make([]byte, domain.MaxNotesLength+1)
				for i := range long {
					long[i] = 'a'
				}
				req.Notes = ptr.Ptr(string(long))
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := &fakeDetector{}
			uc := NewUseCase(&fakeBookingRepo{}, detector, fakeTxManager{}, nopLogger{}, true)

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestExecute_DetectorErrorIsInternal(t *testing.T) {
	detector := &fakeDetector{checkErr: errors.New("db down")}
	uc := NewUseCase(&fakeBookingRepo{}, detector, fakeTxManager{}, nopLogger{}, true)

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInternal))
	assert.False(t, errors.Is(err, ErrBookingConflict))
}
