package conflicts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/artel-platform/AOM-BookingService/internal/domain"
	conflictRepo "github.com/artel-platform/AOM-BookingService/internal/infra/storage/conflictlog"
	resourceRepo "github.com/artel-platform/AOM-BookingService/internal/infra/storage/resource"
	orgClient "github.com/artel-platform/AOM-BookingService/internal/integrations/orgservice"
	"github.com/artel-platform/AOM-BookingService/internal/service/conflicts/models"
)

// Service детектор конфликтов бронирования и владелец журнала конфликтов
// Не хранит состояния между вызовами: каждая проверка перечитывает данные
type Service struct {
	bookingRepo  BookingRepository
	resourceRepo ResourceRepository
	conflictRepo ConflictLogRepository
	orgClient    OrgServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса конфликтов
func NewService(
	bookingRepo BookingRepository,
	resourceRepo ResourceRepository,
	conflictRepo ConflictLogRepository,
	orgClient OrgServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		conflictRepo: conflictRepo,
		orgClient:    orgClient,
		logger:       logger,
	}
}

// CheckBookingConflicts выполняет три независимые проверки кандидата на бронирование
// и возвращает список найденных конфликтов в фиксированном порядке:
//  1. двойное бронирование (пересечение с активными бронированиями)
//  2. доступность ресурса (существует, активен, открыт для бронирования)
//  3. вместимость (суммарная загрузка пересекающихся бронирований)
//
// Проверки не сокращаются: неактивный ресурс, у которого к тому же исчерпана
// вместимость, даст два конфликта. Проверка вместимости пропускается, только
// если ресурс не найден (вместимость прочитать невозможно) или не ограничен.
//
// Вызов только читает данные; запись в журнал — отдельный явный вызов LogConflict.
// Любая ошибка хранилища прерывает всю проверку: частичный результат не возвращается
func (s *Service) CheckBookingConflicts(
	ctx context.Context,
	organizationID, resourceID int64,
	start, end time.Time,
	excludeBookingID *int64,
) ([]domain.BookingConflict, error) {
	s.logger.Info("CheckBookingConflicts: org=%d, resource=%d, window=[%s, %s)",
		organizationID, resourceID, start.Format(time.RFC3339), end.Format(time.RFC3339))

	window := &domain.TimeWindow{Start: start, End: end}
	findings := make([]domain.BookingConflict, 0)

	// Проверка 1: двойное бронирование
	overlapping, err := s.bookingRepo.GetOverlapping(ctx, organizationID, resourceID, start, end, excludeBookingID)
	if err != nil {
		s.logger.Error("CheckBookingConflicts: failed to get overlapping bookings: %v", err)
		return nil, fmt.Errorf("%w: CheckBookingConflicts - overlap query: %v", ErrInternal, err)
	}

	if len(overlapping) > 0 {
		findings = append(findings, doubleBookingFinding(window, overlapping))
	}

	// Ресурс читается один раз для проверок 2 и 3
	res, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil && !errors.Is(err, resourceRepo.ErrResourceNotFound) {
		s.logger.Error("CheckBookingConflicts: failed to get resource id=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: CheckBookingConflicts - resource query: %v", ErrInternal, err)
	}

	// Ресурс чужой организации равносилен отсутствующему
	if res != nil && res.OrganizationID != organizationID {
		s.logger.Warn("CheckBookingConflicts: resource id=%d belongs to org=%d, requested org=%d",
			resourceID, res.OrganizationID, organizationID)
		res = nil
	}

	// Проверка 2: доступность ресурса
	// Состояния взаимоисключающие, первый подошедший выигрывает:
	// у отсутствующей строки нет флагов is_active / is_bookable
	switch {
	case res == nil:
		findings = append(findings, resourceUnavailableFinding(window, domain.SeverityCritical,
			"ресурс не найден", domain.ConflictData{Window: window, ResourceMissing: true}))
	case !res.IsActive:
		findings = append(findings, resourceUnavailableFinding(window, domain.SeverityHigh,
			"ресурс деактивирован", domain.ConflictData{Window: window, ResourceInactive: true}))
	case !res.IsBookable:
		findings = append(findings, resourceUnavailableFinding(window, domain.SeverityMedium,
			"ресурс закрыт для бронирования", domain.ConflictData{Window: window, ResourceNotBookable: true}))
	}

	// Проверка 3: вместимость
	// capacity = NULL означает неограниченную вместимость — конфликта не бывает.
	// Собственное количество участников кандидата в сумму не входит:
	// сравнивается только существующая загрузка (зафиксированное поведение)
	if res != nil && res.Capacity != nil {
		load, err := s.bookingRepo.SumParticipants(ctx, organizationID, resourceID, start, end, excludeBookingID)
		if err != nil {
			s.logger.Error("CheckBookingConflicts: failed to sum participants: %v", err)
			return nil, fmt.Errorf("%w: CheckBookingConflicts - capacity query: %v", ErrInternal, err)
		}

		if load >= *res.Capacity {
			findings = append(findings, capacityExceededFinding(window, load, *res.Capacity))
		}
	}

	s.logger.Info("CheckBookingConflicts: org=%d, resource=%d - %d conflict(s) found",
		organizationID, resourceID, len(findings))

	return findings, nil
}

// LogConflict вставляет новую запись журнала конфликтов со статусом open
// и возвращает сохранённую запись.
// Пустая серьёзность трактуется как medium.
// Дедупликация намеренно не выполняется — это ответственность вызывающего кода
func (s *Service) LogConflict(
	ctx context.Context,
	organizationID, resourceID int64,
	conflictType domain.ConflictType,
	data domain.ConflictData,
	severity domain.ConflictSeverity,
) (*domain.ConflictLog, error) {
	if severity == "" {
		severity = domain.SeverityMedium
	}

	if !conflictType.IsValid() {
		return nil, fmt.Errorf("%w: invalid conflict type %q", ErrInvalidInput, conflictType)
	}
	if !severity.IsValid() {
		return nil, fmt.Errorf("%w: invalid severity %q", ErrInvalidInput, severity)
	}

	log := &domain.ConflictLog{
		OrganizationID: organizationID,
		ResourceID:     resourceID,
		Type:           conflictType,
		Data:           data,
		Severity:       severity,
	}

	created, err := s.conflictRepo.Create(ctx, log)
	if err != nil {
		s.logger.Error("LogConflict: failed to create conflict log: org=%d, resource=%d, type=%s: %v",
			organizationID, resourceID, conflictType, err)
		return nil, fmt.Errorf("%w: LogConflict - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("LogConflict: created conflict log id=%d, org=%d, resource=%d, type=%s, severity=%s",
		created.ID, organizationID, resourceID, conflictType, severity)

	return created, nil
}

// ReportConflict ручная регистрация конфликта оператором
// Доступно только менеджерам организации
func (s *Service) ReportConflict(ctx context.Context, req *models.ReportConflictRequest) (*models.ConflictResponse, error) {
	s.logger.Info("ReportConflict: org=%d, resource=%d, type=%s by user=%d",
		req.OrganizationID, req.ResourceID, req.ConflictType, req.UserID)

	if err := s.checkManagerAccess(ctx, req.OrganizationID, req.UserID); err != nil {
		return nil, err
	}

	conflictType, err := models.ToDomainConflictType(req.ConflictType)
	if err != nil {
		s.logger.Warn("ReportConflict: invalid conflict type=%s", req.ConflictType)
		return nil, fmt.Errorf("%w: invalid conflict type", ErrInvalidInput)
	}

	severity := domain.SeverityMedium
	if req.Severity != nil {
		severity, err = models.ToDomainConflictSeverity(*req.Severity)
		if err != nil {
			s.logger.Warn("ReportConflict: invalid severity=%s", *req.Severity)
			return nil, fmt.Errorf("%w: invalid severity", ErrInvalidInput)
		}
	}

	created, err := s.LogConflict(ctx, req.OrganizationID, req.ResourceID, conflictType,
		domain.ConflictData{Description: req.Description}, severity)
	if err != nil {
		return nil, err
	}

	return models.FromDomainConflict(created), nil
}

// ListConflicts получает журнал конфликтов организации с опциональной
// фильтрацией по статусу и серьёзности; новые записи первыми.
// Доступно только менеджерам организации
func (s *Service) ListConflicts(ctx context.Context, req *models.ListConflictsRequest) (*models.ConflictListResponse, error) {
	s.logger.Info("ListConflicts: org=%d, user=%d, status=%v, severity=%v",
		req.OrganizationID, req.UserID, req.Status, req.Severity)

	if err := s.checkManagerAccess(ctx, req.OrganizationID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListConflicts: invalid filter for org=%d: %v", req.OrganizationID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	logs, err := s.conflictRepo.GetByOrganizationWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListConflicts: repository error for org=%d: %v", req.OrganizationID, err)
		return nil, fmt.Errorf("%w: ListConflicts - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListConflicts: fetched %d conflict log(s) for org=%d", len(logs), req.OrganizationID)
	return models.FromDomainConflictList(logs), nil
}

// ResolveConflict переводит запись журнала в терминальный статус
// (resolved по умолчанию, ignored по запросу) и проставляет метаданные разрешения.
// Запись в терминальном статусе повторно не разрешается.
// Доступно только менеджерам организации
func (s *Service) ResolveConflict(ctx context.Context, conflictID int64, req *models.ResolveConflictRequest) (*models.ConflictResponse, error) {
	s.logger.Info("ResolveConflict: conflict=%d by user=%d", conflictID, req.UserID)

	if err := req.Validate(); err != nil {
		s.logger.Warn("ResolveConflict: invalid request for conflict=%d: %v", conflictID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	log, err := s.conflictRepo.GetByID(ctx, conflictID)
	if err != nil {
		if errors.Is(err, conflictRepo.ErrConflictNotFound) {
			s.logger.Warn("ResolveConflict: conflict log id=%d not found", conflictID)
			return nil, ErrConflictNotFound
		}
		s.logger.Error("ResolveConflict: repository error for conflict=%d: %v", conflictID, err)
		return nil, fmt.Errorf("%w: ResolveConflict - repository error: %v", ErrInternal, err)
	}

	if err := s.checkManagerAccess(ctx, log.OrganizationID, req.UserID); err != nil {
		s.logger.Warn("ResolveConflict: access denied for user=%d to conflict=%d", req.UserID, conflictID)
		return nil, err
	}

	if log.Status == domain.ConflictResolved || log.Status == domain.ConflictIgnored {
		s.logger.Warn("ResolveConflict: conflict=%d already in terminal status=%s", conflictID, log.Status)
		return nil, ErrAlreadyResolved
	}

	targetStatus, err := req.TargetStatus()
	if err != nil {
		s.logger.Warn("ResolveConflict: invalid target status for conflict=%d: %v", conflictID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err = s.conflictRepo.Resolve(ctx, conflictID, targetStatus, req.Resolution, req.UserID, req.ResolutionNotes)
	if err != nil {
		if errors.Is(err, conflictRepo.ErrConflictNotFound) {
			s.logger.Warn("ResolveConflict: conflict log id=%d disappeared during resolve", conflictID)
			return nil, ErrConflictNotFound
		}
		s.logger.Error("ResolveConflict: failed to resolve conflict=%d: %v", conflictID, err)
		return nil, fmt.Errorf("%w: ResolveConflict - repository error: %v", ErrInternal, err)
	}

	resolved, err := s.conflictRepo.GetByID(ctx, conflictID)
	if err != nil {
		s.logger.Error("ResolveConflict: failed to re-read conflict=%d: %v", conflictID, err)
		return nil, fmt.Errorf("%w: ResolveConflict - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ResolveConflict: conflict=%d resolved with status=%s by user=%d",
		conflictID, targetStatus, req.UserID)

	return models.FromDomainConflict(resolved), nil
}

// GetConflictStats считает агрегированную статистику журнала конфликтов организации.
// Все записи организации выбираются без пагинации, счётчики считаются в памяти:
// total, open, resolved (investigating и ignored входят только в total),
// разбивки по виду и серьёзности — по всем записям независимо от статуса.
// Доступно только менеджерам организации
func (s *Service) GetConflictStats(ctx context.Context, req *models.GetConflictStatsRequest) (*models.ConflictStatsResponse, error) {
	s.logger.Info("GetConflictStats: org=%d, user=%d", req.OrganizationID, req.UserID)

	if err := s.checkManagerAccess(ctx, req.OrganizationID, req.UserID); err != nil {
		return nil, err
	}

	logs, err := s.conflictRepo.GetByOrganizationWithFilter(ctx, domain.ConflictLogFilter{
		OrganizationID: req.OrganizationID,
	})
	if err != nil {
		s.logger.Error("GetConflictStats: repository error for org=%d: %v", req.OrganizationID, err)
		return nil, fmt.Errorf("%w: GetConflictStats - repository error: %v", ErrInternal, err)
	}

	stats := domain.ConflictStats{
		Total:      len(logs),
		ByType:     make(map[domain.ConflictType]int),
		BySeverity: make(map[domain.ConflictSeverity]int),
	}

	for _, log := range logs {
		switch log.Status {
		case domain.ConflictOpen:
			stats.Open++
		case domain.ConflictResolved:
			stats.Resolved++
		}
		stats.ByType[log.Type]++
		stats.BySeverity[log.Severity]++
	}

	s.logger.Info("GetConflictStats: org=%d - total=%d, open=%d, resolved=%d",
		req.OrganizationID, stats.Total, stats.Open, stats.Resolved)

	return models.FromDomainConflictStats(stats), nil
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
