package conflicts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artel-platform/AOM-BookingService/internal/domain"
	conflictRepo "github.com/artel-platform/AOM-BookingService/internal/infra/storage/conflictlog"
	resourceRepo "github.com/artel-platform/AOM-BookingService/internal/infra/storage/resource"
	"github.com/artel-platform/AOM-BookingService/internal/integrations/orgservice"
	"github.com/artel-platform/AOM-BookingService/internal/service/conflicts/models"
	"github.com/artel-platform/AOM-BookingService/pkg/ptr"
)

// In-memory фейки повторяют контрактную семантику репозиториев:
// пересечение полуоткрытых интервалов, фильтрация по активным статусам

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) matching(organizationID, resourceID int64, start, end time.Time, excludeID *int64) []*domain.Booking {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.OrganizationID != organizationID || b.ResourceID != resourceID {
			continue
		}
		if !b.IsActive() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if !b.Overlaps(start, end) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func (f *fakeBookingRepo) GetOverlapping(_ context.Context, organizationID, resourceID int64, start, end time.Time, excludeID *int64) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.matching(organizationID, resourceID, start, end, excludeID), nil
}

func (f *fakeBookingRepo) SumParticipants(_ context.Context, organizationID, resourceID int64, start, end time.Time, excludeID *int64) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	sum := 0
	for _, b := range f.matching(organizationID, resourceID, start, end, excludeID) {
		sum += b.CurrentParticipants
	}
	return sum, nil
}

type fakeResourceRepo struct {
	resources map[int64]*domain.Resource
}

func (f *fakeResourceRepo) GetByID(_ context.Context, id int64) (*domain.Resource, error) {
	res, ok := f.resources[id]
	if !ok {
		return nil, resourceRepo.ErrResourceNotFound
	}
	return res, nil
}

type fakeConflictRepo struct {
	logs   map[int64]*domain.ConflictLog
	nextID int64
}

func newFakeConflictRepo() *fakeConflictRepo {
	return &fakeConflictRepo{logs: make(map[int64]*domain.ConflictLog)}
}

func (f *fakeConflictRepo) Create(_ context.Context, log *domain.ConflictLog) (*domain.ConflictLog, error) {
	f.nextID++
	stored := *log
	stored.ID = f.nextID
	stored.Status = domain.ConflictOpen
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.logs[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeConflictRepo) GetByID(_ context.Context, id int64) (*domain.ConflictLog, error) {
	log, ok := f.logs[id]
	if !ok {
		return nil, conflictRepo.ErrConflictNotFound
	}
	out := *log
	return &out, nil
}

func (f *fakeConflictRepo) Resolve(_ context.Context, id int64, status domain.ConflictStatus, resolution string, resolvedBy int64, notes *string) error {
	log, ok := f.logs[id]
	if !ok {
		return conflictRepo.ErrConflictNotFound
	}
	now := time.Now()
	log.Status = status
	log.Resolution = &resolution
	log.ResolvedAt = &now
	log.ResolvedBy = &resolvedBy
	log.ResolutionNotes = notes
	log.UpdatedAt = now
	return nil
}

func (f *fakeConflictRepo) GetByOrganizationWithFilter(_ context.Context, filter domain.ConflictLogFilter) ([]*domain.ConflictLog, error) {
	var out []*domain.ConflictLog
	for _, log := range f.logs {
		if log.OrganizationID != filter.OrganizationID {
			continue
		}
		if filter.Status != nil && log.Status != *filter.Status {
			continue
		}
		if filter.Severity != nil && log.Severity != *filter.Severity {
			continue
		}
		copied := *log
		out = append(out, &copied)
	}
	return out, nil
}

type fakeOrgClient struct {
	orgs map[int64]*orgservice.Organization
}

func (f *fakeOrgClient) GetOrganization(_ context.Context, organizationID int64) (*orgservice.Organization, error) {
	org, ok := f.orgs[organizationID]
	if !ok {
		return nil, orgservice.ErrOrganizationNotFound
	}
	return org, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Хелперы сборки

const (
	testOrgID      = int64(1)
	testResourceID = int64(10)
	managerID      = int64(100)
	regularUserID  = int64(200)
)

func hour(h int) time.Time {
	return time.Date(2026, 4, 15, h, 0, 0, 0, time.UTC)
}

func activeResource(capacity *int) *domain.Resource {
	return &domain.Resource{
		ID:             testResourceID,
		OrganizationID: testOrgID,
		Title:          "Большой зал",
		ResourceType:   "hall",
		Capacity:       capacity,
		IsActive:       true,
		IsBookable:     true,
	}
}

func confirmedBooking(id int64, start, end time.Time, participants int) *domain.Booking {
	return &domain.Booking{
		ID:                  id,
		OrganizationID:      testOrgID,
		ResourceID:          testResourceID,
		CreatedBy:           regularUserID,
		StartTime:           start,
		EndTime:             end,
		Status:              domain.StatusConfirmed,
		CurrentParticipants: participants,
	}
}

func newTestService(bookings *fakeBookingRepo, resources *fakeResourceRepo, conflicts *fakeConflictRepo) *Service {
	if conflicts == nil {
		conflicts = newFakeConflictRepo()
	}
	orgs := &fakeOrgClient{orgs: map[int64]*orgservice.Organization{
		testOrgID: {ID: testOrgID, Name: "Театр на Таганке", ManagerIDs: []int64{managerID}},
	}}
	return NewService(bookings, resources, conflicts, orgs, nopLogger{})
}

// Проверка бронирования

func TestCheckBookingConflicts_CleanWindow(t *testing.T) {
	svc := newTestService(
		&fakeBookingRepo{},
		&fakeResourceRepo{resources: map[int64]*domain.Resource{testResourceID: activeResource(nil)}},
		nil,
	)

	findings, err := svc.CheckBookingConflicts(context.Background(), testOrgID, testResourceID, hour(10), hour(12), nil)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestCheckBookingConflicts_DoubleBooking(t *testing.T) {
	existing := confirmedBooking(1, hour(10), hour(12), 2)
	svc := newTestService(
		&fakeBookingRepo{bookings: []*domain.Booking{existing}},
		&fakeResourceRepo{resources: map[int64]*domain.Resource{testResourceID: activeResource(nil)}},
		nil,
	)

	findings, err := svc.CheckBookingConflicts(context.Background(), testOrgID, testResourceID, hour(11), hour(13), nil)
	require.NoError(t, err)
	require.Len(t, findings, 1)

	f := findings[0]
	assert.Equal(t, domain.ConflictDoubleBooking, f.Type)
	assert.Equal(t, domain.SeverityHigh, f.Severity)
	require.Len(t, f.ConflictingBookings, 1)
	assert.Equal(t, int64(1), f.ConflictingBookings[0].ID)
	assert.NotEmpty(t, f.SuggestedResolutions)
	require.Len(t, f.Data.ConflictingBookings, 1)
	assert.Equal(t, int64(1), f.Data.ConflictingBookings[0].ID)
}

func TestCheckBookingConflicts_BackToBackAllowed(t *testing.T) {
	existing := confirmedBooking(1, hour(10), hour(12), 2)
	svc := newTestService(
		&fakeBookingRepo{bookings: []*domain.Booking{existing}},
		&fakeResourceRepo{resources: map[int64]*domain.Resource{testResourceID: activeResource(nil)}},
		nil,
	)

	// Новое окно начинается ровно в момент окончания существующего
	findings, err := svc.CheckBookingConflicts(context.Background(), testOrgID, testResourceID, hour(12), hour(14), nil)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestCheckBookingConflicts_CancelledBookingIgnored(t *testing.T) {
	cancelled := confirmedBooking(1, hour(10), hour(12), 2)
	cancelled.Status = domain.StatusCancelled

	svc := newTestService(
		&fakeBookingRepo{bookings: []*domain.Booking{cancelled}},
		&fakeResourceRepo{resources: map[int64]*domain.Resource{testResourceID: activeResource(nil)}},
		nil,
	)

	findings, err := svc.CheckBookingConflicts(context.Background(), testOrgID, testResourceID, hour(10), hour(12), nil)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestCheckBookingConflicts_ExcludeBookingID(t *testing.T) {
	existing := confirmedBooking(5, hour(10), hour(12), 2)
	svc := newTestService(
		&fakeBookingRepo{bookings: []*domain.Booking{existing}},
		&fakeResourceRepo{resources: map[int64]*domain.Resource{testResourceID: activeResource(nil)}},
		nil,
	)

	// Перенос собственного бронирования не конфликтует сам с собой
	findings, err := svc.CheckBookingConflicts(context.Background(), testOrgID, testResourceID, hour(11), hour(13), ptr.Ptr(int64(5)))
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestCheckBookingConflicts_ResourceUnavailable(t *testing.T) {
	tests := []struct {
		name         string
		resources    map[int64]*domain.Resource
		wantSeverity domain.ConflictSeverity
	}{
		{
			name:         "resource missing",
			resources:    map[int64]*domain.Resource{},
			wantSeverity: domain.SeverityCritical,
		},
		{
			name: "resource of another organization",
			resources: map[int64]*domain.Resource{testResourceID: {
				ID: testResourceID, OrganizationID: 999, IsActive: true, IsBookable: true,
			}},
			wantSeverity: domain.SeverityCritical,
		},
		{
			name: "resource inactive",
			resources: map[int64]*domain.Resource{testResourceID: {
				ID: testResourceID, OrganizationID: testOrgID, IsActive: false, IsBookable: true,
			}},
			wantSeverity: domain.SeverityHigh,
		},
		{
			name: "resource not bookable",
			resources: map[int64]*domain.Resource{testResourceID: {
				ID: testResourceID, OrganizationID: testOrgID, IsActive: true, IsBookable: false,
			}},
			wantSeverity: domain.SeverityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeBookingRepo{}, &fakeResourceRepo{resources: tt.resources}, nil)

			findings, err := svc.CheckBookingConflicts(context.Background(), testOrgID, testResourceID, hour(10), hour(12), nil)
			require.NoError(t, err)
			require.Len(t, findings, 1)
			assert.Equal(t, domain.ConflictResourceUnavailable, findings[0].Type)
			assert.Equal(t, tt.wantSeverity, findings[0].Severity)
		})
	}
}

func TestCheckBookingConflicts_CapacityExceeded(t *testing.T) {
	// Два непересекающихся между собой бронирования, оба пересекают запрошенное окно
	existing := []*domain.Booking{
		confirmedBooking(1, hour(9), hour(11), 6),
		confirmedBooking(2, hour(11), hour(13), 4),
	}

	svc := newTestService(
		&fakeBookingRepo{bookings: existing},
		&fakeResourceRepo{resources: map[int64]*domain.Resource{testResourceID: activeResource(ptr.Ptr(10))}},
		nil,
	)

	findings, err := svc.CheckBookingConflicts(context.Background(), testOrgID, testResourceID, hour(10), hour(12), nil)
	require.NoError(t, err)

	// Оба существующих пересекаются с окном, значит есть и double_booking
	require.Len(t, findings, 2)
	assert.Equal(t, domain.ConflictDoubleBooking, findings[0].Type)

	capFinding := findings[1]
	assert.Equal(t, domain.ConflictCapacityExceeded, capFinding.Type)
	assert.Equal(t, domain.SeverityMedium, capFinding.Severity)
	require.NotNil(t, capFinding.Data.CurrentLoad)
	require.NotNil(t, capFinding.Data.Capacity)
	assert.Equal(t, 10, *capFinding.Data.CurrentLoad)
	assert.Equal(t, 10, *capFinding.Data.Capacity)
}

func TestCheckBookingConflicts_CapacityUnderLimit(t *testing.T) {
	existing := []*domain.Booking{confirmedBooking(1, hour(9), hour(11), 3)}

	svc := newTestService(
		&fakeBookingRepo{bookings: existing},
		&fakeResourceRepo{resources: map[int64]*domain.Resource{testResourceID: activeResource(ptr.Ptr(10))}},
		nil,
	)

	findings, err := svc.CheckBookingConflicts(context.Background(), testOrgID, testResourceID, hour(10), hour(12), nil)
	require.NoError(t, err)

	// Пересечение есть, но вместимость не исчерпана
	require.Len(t, findings, 1)
	assert.Equal(t, domain.ConflictDoubleBooking, findings[0].Type)
}

func TestCheckBookingConflicts_NilCapacitySkipsCheck(t *testing.T) {
	existing := []*domain.Booking{confirmedBooking(1, hour(9), hour(11), 1000)}

	svc := newTestService(
		&fakeBookingRepo{bookings: existing},
		&fakeResourceRepo{resources: map[int64]*domain.Resource{testResourceID: activeResource(nil)}},
		nil,
	)

	findings, err := svc.CheckBookingConflicts(context.Background(), testOrgID, testResourceID, hour(10), hour(12), nil)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, domain.ConflictDoubleBooking, findings[0].Type)
}

func TestCheckBookingConflicts_ChecksDoNotShortCircuit(t *testing.T) {
	// Деактивированный ресурс с исчерпанной вместимостью даёт оба конфликта
	inactive := activeResource(ptr.Ptr(5))
	inactive.IsActive = false

	existing := []*domain.Booking{confirmedBooking(1, hour(9), hour(13), 5)}

	svc := newTestService(
		&fakeBookingRepo{bookings: existing},
		&fakeResourceRepo{resources: map[int64]*domain.Resource{testResourceID: inactive}},
		nil,
	)

	findings, err := svc.CheckBookingConflicts(context.Background(), testOrgID, testResourceID, hour(10), hour(12), nil)
	require.NoError(t, err)
	require.Len(t, findings, 3)

	// Порядок фиксированный: пересечение, доступность, вместимость
	assert.Equal(t, domain.ConflictDoubleBooking, findings[0].Type)
	assert.Equal(t, domain.ConflictResourceUnavailable, findings[1].Type)
	assert.Equal(t, domain.SeverityHigh, findings[1].Severity)
	assert.Equal(t, domain.ConflictCapacityExceeded, findings[2].Type)
}

func TestCheckBookingConflicts_MissingResourceSkipsCapacity(t *testing.T) {
	existing := []*domain.Booking{confirmedBooking(1, hour(9), hour(13), 50)}

	svc := newTestService(
		&fakeBookingRepo{bookings: existing},
		&fakeResourceRepo{resources: map[int64]*domain.Resource{}},
		nil,
	)

	findings, err := svc.CheckBookingConflicts(context.Background(), testOrgID, testResourceID, hour(10), hour(12), nil)
	require.NoError(t, err)

	// Ресурса нет — вместимость прочитать невозможно, проверка пропущена
	require.Len(t, findings, 2)
	assert.Equal(t, domain.ConflictDoubleBooking, findings[0].Type)
	assert.Equal(t, domain.ConflictResourceUnavailable, findings[1].Type)
}

func TestCheckBookingConflicts_RepositoryError(t *testing.T) {
	svc := newTestService(
		&fakeBookingRepo{err: errors.New("connection refused")},
		&fakeResourceRepo{resources: map[int64]*domain.Resource{testResourceID: activeResource(nil)}},
		nil,
	)

	findings, err := svc.CheckBookingConflicts(context.Background(), testOrgID, testResourceID, hour(10), hour(12), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInternal))
	assert.Nil(t, findings)
}

// Журнал конфликтов

func TestLogConflict_DefaultSeverity(t *testing.T) {
	repo := newFakeConflictRepo()
	svc := newTestService(&fakeBookingRepo{}, &fakeResourceRepo{}, repo)

	created, err := svc.LogConflict(context.Background(), testOrgID, testResourceID,
		domain.ConflictDoubleBooking, domain.ConflictData{}, "")
	require.NoError(t, err)

	assert.Equal(t, domain.SeverityMedium, created.Severity)
	assert.Equal(t, domain.ConflictOpen, created.Status)
}

func TestLogConflict_InvalidType(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeResourceRepo{}, nil)

	_, err := svc.LogConflict(context.Background(), testOrgID, testResourceID,
		domain.ConflictType("unknown"), domain.ConflictData{}, domain.SeverityLow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestReportConflict_ManagerOnly(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeResourceRepo{}, nil)

	_, err := svc.ReportConflict(context.Background(), &models.ReportConflictRequest{
		UserID:         regularUserID,
		OrganizationID: testOrgID,
		ResourceID:     testResourceID,
		ConflictType:   string(domain.ConflictTimezoneMismatch),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAccessDenied))
}

func TestReportConflict_Success(t *testing.T) {
	repo := newFakeConflictRepo()
	svc := newTestService(&fakeBookingRepo{}, &fakeResourceRepo{}, repo)

	resp, err := svc.ReportConflict(context.Background(), &models.ReportConflictRequest{
		UserID:         managerID,
		OrganizationID: testOrgID,
		ResourceID:     testResourceID,
		ConflictType:   string(domain.ConflictTimezoneMismatch),
		Severity:       ptr.Ptr(string(domain.SeverityLow)),
		Description:    ptr.Ptr("гастроли: часовой пояс площадки отличается"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.ConflictTimezoneMismatch), resp.ConflictType)
	assert.Equal(t, string(domain.SeverityLow), resp.Severity)
	assert.Equal(t, string(domain.ConflictOpen), resp.Status)
	require.NotNil(t, resp.ConflictData.Description)
}

func TestResolveConflict_DefaultsToResolved(t *testing.T) {
	repo := newFakeConflictRepo()
	svc := newTestService(&fakeBookingRepo{}, &fakeResourceRepo{}, repo)

	created, err := svc.LogConflict(context.Background(), testOrgID, testResourceID,
		domain.ConflictDoubleBooking, domain.ConflictData{}, domain.SeverityHigh)
	require.NoError(t, err)

	resp, err := svc.ResolveConflict(context.Background(), created.ID, &models.ResolveConflictRequest{
		UserID:     managerID,
		Resolution: "бронирование перенесено на другой день",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.ConflictResolved), resp.Status)
	require.NotNil(t, resp.Resolution)
	assert.Equal(t, "бронирование перенесено на другой день", *resp.Resolution)
	require.NotNil(t, resp.ResolvedBy)
	assert.Equal(t, managerID, *resp.ResolvedBy)
	assert.NotNil(t, resp.ResolvedAt)
}

func TestResolveConflict_IgnoredStatus(t *testing.T) {
	repo := newFakeConflictRepo()
	svc := newTestService(&fakeBookingRepo{}, &fakeResourceRepo{}, repo)

	created, err := svc.LogConflict(context.Background(), testOrgID, testResourceID,
		domain.ConflictCapacityExceeded, domain.ConflictData{}, domain.SeverityMedium)
	require.NoError(t, err)

	resp, err := svc.ResolveConflict(context.Background(), created.ID, &models.ResolveConflictRequest{
		UserID:     managerID,
		Resolution: "ложное срабатывание",
		Status:     ptr.Ptr(string(domain.ConflictIgnored)),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.ConflictIgnored), resp.Status)
}

func TestResolveConflict_TerminalStatusGuard(t *testing.T) {
	repo := newFakeConflictRepo()
	svc := newTestService(&fakeBookingRepo{}, &fakeResourceRepo{}, repo)

	created, err := svc.LogConflict(context.Background(), testOrgID, testResourceID,
		domain.ConflictDoubleBooking, domain.ConflictData{}, domain.SeverityHigh)
	require.NoError(t, err)

	_, err = svc.ResolveConflict(context.Background(), created.ID, &models.ResolveConflictRequest{
		UserID:     managerID,
		Resolution: "разрешено",
	})
	require.NoError(t, err)

	_, err = svc.ResolveConflict(context.Background(), created.ID, &models.ResolveConflictRequest{
		UserID:     managerID,
		Resolution: "повторное разрешение",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyResolved))
}

func TestResolveConflict_OpenIsNotTerminalTarget(t *testing.T) {
	repo := newFakeConflictRepo()
	svc := newTestService(&fakeBookingRepo{}, &fakeResourceRepo{}, repo)

	created, err := svc.LogConflict(context.Background(), testOrgID, testResourceID,
		domain.ConflictDoubleBooking, domain.ConflictData{}, domain.SeverityHigh)
	require.NoError(t, err)

	_, err = svc.ResolveConflict(context.Background(), created.ID, &models.ResolveConflictRequest{
		UserID:     managerID,
		Resolution: "некорректный целевой статус",
		Status:     ptr.Ptr(string(domain.ConflictOpen)),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestResolveConflict_NotFound(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeResourceRepo{}, nil)

	_, err := svc.ResolveConflict(context.Background(), 12345, &models.ResolveConflictRequest{
		UserID:     managerID,
		Resolution: "нечего разрешать",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflictNotFound))
}

func TestResolveConflict_RequiresResolution(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeResourceRepo{}, nil)

	_, err := svc.ResolveConflict(context.Background(), 1, &models.ResolveConflictRequest{
		UserID: managerID,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestGetConflictStats(t *testing.T) {
	repo := newFakeConflictRepo()
	svc := newTestService(&fakeBookingRepo{}, &fakeResourceRepo{}, repo)
	ctx := context.Background()

	first, err := svc.LogConflict(ctx, testOrgID, testResourceID,
		domain.ConflictDoubleBooking, domain.ConflictData{}, domain.SeverityHigh)
	require.NoError(t, err)

	_, err = svc.LogConflict(ctx, testOrgID, testResourceID,
		domain.ConflictDoubleBooking, domain.ConflictData{}, domain.SeverityHigh)
	require.NoError(t, err)

	third, err := svc.LogConflict(ctx, testOrgID, testResourceID,
		domain.ConflictCapacityExceeded, domain.ConflictData{}, domain.SeverityMedium)
	require.NoError(t, err)

	_, err = svc.ResolveConflict(ctx, first.ID, &models.ResolveConflictRequest{
		UserID:     managerID,
		Resolution: "перенесено",
	})
	require.NoError(t, err)

	_, err = svc.ResolveConflict(ctx, third.ID, &models.ResolveConflictRequest{
		UserID:     managerID,
		Resolution: "игнорируем",
		Status:     ptr.Ptr(string(domain.ConflictIgnored)),
	})
	require.NoError(t, err)

	stats, err := svc.GetConflictStats(ctx, &models.GetConflictStatsRequest{
		UserID:         managerID,
		OrganizationID: testOrgID,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Open)
	assert.Equal(t, 1, stats.Resolved) // ignored входит только в total
	assert.Equal(t, 2, stats.ByType[string(domain.ConflictDoubleBooking)])
	assert.Equal(t, 1, stats.ByType[string(domain.ConflictCapacityExceeded)])
	assert.Equal(t, 2, stats.BySeverity[string(domain.SeverityHigh)])
	assert.Equal(t, 1, stats.BySeverity[string(domain.SeverityMedium)])
}

func TestListConflicts_StatusFilterRoundTrip(t *testing.T) {
	repo := newFakeConflictRepo()
	svc := newTestService(&fakeBookingRepo{}, &fakeResourceRepo{}, repo)
	ctx := context.Background()

	created, err := svc.LogConflict(ctx, testOrgID, testResourceID,
		domain.ConflictDoubleBooking, domain.ConflictData{}, domain.SeverityHigh)
	require.NoError(t, err)

	// Свежая запись видна в выборке открытых конфликтов
	open, err := svc.ListConflicts(ctx, &models.ListConflictsRequest{
		UserID:         managerID,
		OrganizationID: testOrgID,
		Status:         ptr.Ptr(string(domain.ConflictOpen)),
	})
	require.NoError(t, err)
	require.Len(t, open.Conflicts, 1)
	assert.Equal(t, created.ID, open.Conflicts[0].ID)
	assert.Equal(t, string(domain.ConflictOpen), open.Conflicts[0].Status)

	_, err = svc.ResolveConflict(ctx, created.ID, &models.ResolveConflictRequest{
		UserID:     managerID,
		Resolution: "бронирование перенесено",
	})
	require.NoError(t, err)

	// После разрешения запись переходит в выборку resolved с заполненными
	// полями разрешения
	resolved, err := svc.ListConflicts(ctx, &models.ListConflictsRequest{
		UserID:         managerID,
		OrganizationID: testOrgID,
		Status:         ptr.Ptr(string(domain.ConflictResolved)),
	})
	require.NoError(t, err)
	require.Len(t, resolved.Conflicts, 1)
	assert.Equal(t, created.ID, resolved.Conflicts[0].ID)
	assert.Equal(t, string(domain.ConflictResolved), resolved.Conflicts[0].Status)
	require.NotNil(t, resolved.Conflicts[0].Resolution)
	assert.Equal(t, "бронирование перенесено", *resolved.Conflicts[0].Resolution)
	require.NotNil(t, resolved.Conflicts[0].ResolvedBy)
	assert.Equal(t, managerID, *resolved.Conflicts[0].ResolvedBy)
	assert.NotNil(t, resolved.Conflicts[0].ResolvedAt)

	// И исчезает из выборки открытых
	open, err = svc.ListConflicts(ctx, &models.ListConflictsRequest{
		UserID:         managerID,
		OrganizationID: testOrgID,
		Status:         ptr.Ptr(string(domain.ConflictOpen)),
	})
	require.NoError(t, err)
	assert.Empty(t, open.Conflicts)
}

func TestListConflicts_FilterBySeverity(t *testing.T) {
	repo := newFakeConflictRepo()
	svc := newTestService(&fakeBookingRepo{}, &fakeResourceRepo{}, repo)
	ctx := context.Background()

	_, err := svc.LogConflict(ctx, testOrgID, testResourceID,
		domain.ConflictDoubleBooking, domain.ConflictData{}, domain.SeverityHigh)
	require.NoError(t, err)

	_, err = svc.LogConflict(ctx, testOrgID, testResourceID,
		domain.ConflictCapacityExceeded, domain.ConflictData{}, domain.SeverityMedium)
	require.NoError(t, err)

	resp, err := svc.ListConflicts(ctx, &models.ListConflictsRequest{
		UserID:         managerID,
		OrganizationID: testOrgID,
		Severity:       ptr.Ptr(string(domain.SeverityHigh)),
	})
	require.NoError(t, err)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, string(domain.ConflictDoubleBooking), resp.Conflicts[0].ConflictType)
}

func TestListConflicts_UnknownOrganization(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeResourceRepo{}, nil)

	_, err := svc.ListConflicts(context.Background(), &models.ListConflictsRequest{
		UserID:         managerID,
		OrganizationID: 9999,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOrganizationNotFound))
}
