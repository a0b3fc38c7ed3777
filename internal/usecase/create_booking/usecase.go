package create_booking

import (
	"context"
	"fmt"

	"github.com/artel-platform/AOM-BookingService/internal/domain"
)

// UseCase создание бронирования с проверкой конфликтов
// Проверка и вставка выполняются в одной serializable транзакции, чтобы два
// конкурентных запроса не могли одновременно пройти проверку и оба записаться
type UseCase struct {
	bookingRepo   BookingRepository
	detector      ConflictDetector
	txManager     TransactionManager
	logger        Logger
	logOnConflict bool
}

// NewUseCase создает новый usecase создания бронирования
// logOnConflict включает запись найденных конфликтов в журнал при отклонении
func NewUseCase(
	bookingRepo BookingRepository,
	detector ConflictDetector,
	txManager TransactionManager,
	logger Logger,
	logOnConflict bool,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		detector:      detector,
		txManager:     txManager,
		logger:        logger,
		logOnConflict: logOnConflict,
	}
}

// Execute создает бронирование, если детектор не нашёл конфликтов
// При наличии конфликтов возвращает *ConflictsError со списком находок
func (u *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		u.logger.Warn("Execute: validation failed: %v", err)
		return nil, err
	}

	u.logger.Info("Execute: creating booking org=%d resource=%d window=[%s, %s) by user=%d",
		req.OrganizationID, req.ResourceID,
		req.StartTime.Format("2006-01-02T15:04:05Z07:00"),
		req.EndTime.Format("2006-01-02T15:04:05Z07:00"),
		req.UserID)

	var created *domain.Booking
	var findings []domain.BookingConflict

	err := u.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		conflicts, err := u.detector.CheckBookingConflicts(
			ctx, req.OrganizationID, req.ResourceID, req.StartTime, req.EndTime, nil)
		if err != nil {
			return fmt.Errorf("%w: Execute - conflict check failed: %v", ErrInternal, err)
		}

		if len(conflicts) > 0 {
			findings = conflicts
			return &ConflictsError{Findings: conflicts}
		}

		booking := &domain.Booking{
			OrganizationID:      req.OrganizationID,
			ResourceID:          req.ResourceID,
			CreatedBy:           req.UserID,
			StartTime:           req.StartTime,
			EndTime:             req.EndTime,
			Status:              domain.StatusConfirmed,
			CurrentParticipants: req.Participants,
			Notes:               req.Notes,
		}

		created, err = u.bookingRepo.Create(ctx, booking)
		if err != nil {
			return fmt.Errorf("%w: Execute - failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if len(findings) > 0 {
			u.logger.Warn("Execute: rejected booking org=%d resource=%d, %d conflict(s) found",
				req.OrganizationID, req.ResourceID, len(findings))
			// Журналируем находки уже вне транзакции: откат вставки не должен
			// откатывать запись в журнал конфликтов
			u.recordFindings(ctx, req, findings)
			return nil, err
		}
		u.logger.Error("Execute: transaction failed for org=%d resource=%d: %v",
			req.OrganizationID, req.ResourceID, err)
		return nil, err
	}

	u.logger.Info("Execute: created booking id=%d org=%d resource=%d",
		created.ID, created.OrganizationID, created.ResourceID)
	return fromDomainBooking(created), nil
}

// recordFindings записывает найденные конфликты в журнал (best-effort)
// Ошибки журналирования не влияют на ответ клиенту
func (u *UseCase) recordFindings(ctx context.Context, req *Request, findings []domain.BookingConflict) {
	if !u.logOnConflict {
		return
	}

	for _, f := range findings {
		if _, err := u.detector.LogConflict(
			ctx, req.OrganizationID, req.ResourceID, f.Type, f.Data, f.Severity); err != nil {
			u.logger.Error("recordFindings: failed to log %s conflict for org=%d resource=%d: %v",
				f.Type, req.OrganizationID, req.ResourceID, err)
		}
	}
}
