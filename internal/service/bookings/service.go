package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/artel-platform/AOM-BookingService/internal/domain"
	bookingRepo "github.com/artel-platform/AOM-BookingService/internal/infra/storage/booking"
	orgClient "github.com/artel-platform/AOM-BookingService/internal/integrations/orgservice"
	"github.com/artel-platform/AOM-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	orgClient   OrgServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	orgClient OrgServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		orgClient:   orgClient,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит своё бронирование или любое бронирование организации,
// если он её менеджер
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования, созданные пользователем
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d booking(s) for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetOrganizationBookings получает бронирования организации с фильтрацией
// по ресурсу, периоду и статусу
// Доступно только менеджерам организации
func (s *Service) GetOrganizationBookings(ctx context.Context, req *models.GetOrganizationBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetOrganizationBookings: org=%d, user=%d", req.OrganizationID, req.UserID)

	if err := s.checkManagerAccess(ctx, req.OrganizationID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetOrganizationBookings: invalid filter for org=%d: %v", req.OrganizationID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByOrganizationWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetOrganizationBookings: repository error for org=%d: %v", req.OrganizationID, err)
		return nil, fmt.Errorf("%w: GetOrganizationBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOrganizationBookings: fetched %d booking(s) for org=%d", len(bookings), req.OrganizationID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Пользователь может отменить своё бронирование, менеджер — любое бронирование
// организации. Отменённое бронирование перестаёт занимать ресурс
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if booking.CreatedBy != req.UserID {
		if err := s.checkManagerAccess(ctx, booking.OrganizationID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// UpdateStatus обновляет статус бронирования (подтверждение и т.п.)
// Доступно только менеджерам организации; для отмены используется Cancel
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if err := s.checkManagerAccess(ctx, booking.OrganizationID, req.UserID); err != nil {
		return err
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil || newStatus == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: booking id=%d updated to status=%s", bookingID, newStatus)
	return nil
}

// UpdateParticipants обновляет количество участников бронирования
// Доступно владельцу бронирования и менеджерам организации
// Вместимость ресурса при этом не перепроверяется: изменение числа участников
// существующего бронирования — операторское действие
func (s *Service) UpdateParticipants(ctx context.Context, bookingID int64, req *models.UpdateParticipantsRequest) error {
	s.logger.Info("UpdateParticipants: booking id=%d, participants=%d by user=%d",
		bookingID, req.CurrentParticipants, req.UserID)

	if req.CurrentParticipants < 0 {
		s.logger.Warn("UpdateParticipants: negative participants=%d for booking id=%d",
			req.CurrentParticipants, bookingID)
		return fmt.Errorf("%w: participants must not be negative", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateParticipants: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateParticipants: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateParticipants - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, booking, req.UserID); err != nil {
		s.logger.Warn("UpdateParticipants: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return err
	}

	if err := s.bookingRepo.UpdateParticipants(ctx, bookingID, req.CurrentParticipants); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateParticipants: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateParticipants - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateParticipants: booking id=%d updated to %d participant(s)",
		bookingID, req.CurrentParticipants)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Доступ есть у владельца бронирования и у менеджеров организации
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.CreatedBy == userID {
		return nil
	}

	if err := s.checkManagerAccess(ctx, booking.OrganizationID, userID); err != nil {
		// Ошибка уже залогирована в checkManagerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером организации
func (s *Service) checkManagerAccess(ctx context.Context, organizationID int64, userID int64) error {
	org, err := s.orgClient.GetOrganization(ctx, organizationID)
	if err != nil {
		if errors.Is(err, orgClient.ErrOrganizationNotFound) {
			s.logger.Warn("checkManagerAccess: organization id=%d not found", organizationID)
			return ErrOrganizationNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get organization id=%d: %v", organizationID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get organization: %v", ErrInternal, err)
	}

	if !org.IsManager(userID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of org=%d", userID, organizationID)
		return ErrAccessDenied
	}

	return nil
}
