package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artel-platform/AOM-BookingService/internal/domain"
	bookingRepo "github.com/artel-platform/AOM-BookingService/internal/infra/storage/booking"
	"github.com/artel-platform/AOM-BookingService/internal/integrations/orgservice"
	"github.com/artel-platform/AOM-BookingService/internal/service/bookings/models"
	"github.com/artel-platform/AOM-BookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		copied := *b
		repo.bookings[b.ID] = &copied
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	out := *b
	return &out, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.CreatedBy != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByOrganizationWithFilter(_ context.Context, filter domain.OrganizationBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.OrganizationID != filter.OrganizationID {
			continue
		}
		if filter.ResourceID != nil && b.ResourceID != *filter.ResourceID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if !filter.IncludeInactive && filter.Status == nil && !b.IsActive() {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) UpdateParticipants(_ context.Context, id int64, participants int) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.CurrentParticipants = participants
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	now := time.Now()
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	b.CancelledAt = &now
	return nil
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

const (
	testOrgID  = int64(1)
	managerID  = int64(100)
	ownerID    = int64(200)
	strangerID = int64(300)
)

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	start := time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:                  id,
		OrganizationID:      testOrgID,
		ResourceID:          10,
		CreatedBy:           ownerID,
		StartTime:           start,
		EndTime:             start.Add(2 * time.Hour),
		Status:              status,
		CurrentParticipants: 5,
	}
}

func newTestService(repo *fakeBookingRepo) *Service {
	orgs := &fakeOrgClient{orgs: map[int64]*orgservice.Organization{
		testOrgID: {ID: testOrgID, Name: "Галерея Артель", ManagerIDs: []int64{managerID}},
	}}
	return NewService(repo, orgs, nopLogger{})
}

func TestGetByID_Owner(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(testBooking(1, domain.StatusConfirmed)))

	resp, err := svc.GetByID(context.Background(), 1, ownerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestGetByID_Manager(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(testBooking(1, domain.StatusConfirmed)))

	resp, err := svc.GetByID(context.Background(), 1, managerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}

func TestGetByID_Stranger(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(testBooking(1, domain.StatusConfirmed)))

	_, err := svc.GetByID(context.Background(), 1, strangerID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAccessDenied))
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo())

	_, err := svc.GetByID(context.Background(), 99, ownerID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBookingNotFound))
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	repo := newFakeBookingRepo(
		testBooking(1, domain.StatusConfirmed),
		testBooking(2, domain.StatusCancelled),
	)
	svc := newTestService(repo)

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: ownerID,
		Status: ptr.Ptr(string(domain.StatusCancelled)),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(2), resp.Bookings[0].ID)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc := newTestService(newFakeBookingRepo())

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: ownerID,
		Status: ptr.Ptr("unknown"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestGetOrganizationBookings_ManagerOnly(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(testBooking(1, domain.StatusConfirmed)))

	_, err := svc.GetOrganizationBookings(context.Background(), &models.GetOrganizationBookingsRequest{
		UserID:         ownerID,
		OrganizationID: testOrgID,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAccessDenied))

	resp, err := svc.GetOrganizationBookings(context.Background(), &models.GetOrganizationBookingsRequest{
		UserID:         managerID,
		OrganizationID: testOrgID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
}

func TestCancel_Owner(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
	svc := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             ownerID,
		CancellationReason: "изменились планы",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
	require.NotNil(t, repo.bookings[1].CancellationReason)
	assert.Equal(t, "изменились планы", *repo.bookings[1].CancellationReason)
}

func TestCancel_Manager(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
	svc := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             managerID,
		CancellationReason: "ресурс закрыт на ремонт",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
}

func TestCancel_Stranger(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(testBooking(1, domain.StatusConfirmed)))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             strangerID,
		CancellationReason: "чужое бронирование",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAccessDenied))
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(testBooking(1, domain.StatusCancelled)))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             ownerID,
		CancellationReason: "повторная отмена",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCannotCancel))
}

func TestUpdateStatus_ManagerOnly(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
	svc := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: string(domain.StatusConfirmed),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAccessDenied))

	err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: managerID,
		Status: string(domain.StatusConfirmed),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
}

func TestUpdateStatus_CancelledRejected(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(testBooking(1, domain.StatusConfirmed)))

	// Для отмены используется Cancel, прямой перевод в cancelled запрещён
	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: managerID,
		Status: string(domain.StatusCancelled),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestUpdateParticipants(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
	svc := newTestService(repo)

	err := svc.UpdateParticipants(context.Background(), 1, &models.UpdateParticipantsRequest{
		UserID:              ownerID,
		CurrentParticipants: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, repo.bookings[1].CurrentParticipants)
}

func TestUpdateParticipants_Negative(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(testBooking(1, domain.StatusConfirmed)))

	err := svc.UpdateParticipants(context.Background(), 1, &models.UpdateParticipantsRequest{
		UserID:              ownerID,
		CurrentParticipants: -1,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
