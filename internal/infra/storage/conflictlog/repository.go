package conflictlog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/artel-platform/AOM-BookingService/internal/domain"
	"github.com/artel-platform/AOM-BookingService/pkg/dbmetrics"
	"github.com/artel-platform/AOM-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий журнала конфликтов
// Детектор — единственный писатель новых записей и единственный мутатор
// полей разрешения
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала конфликтов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет новую запись журнала со статусом open
// Дедупликация не выполняется: два вызова для одного логического конфликта
// дают две записи — это ответственность вызывающего кода
func (r *Repository) Create(ctx context.Context, log *domain.ConflictLog) (*domain.ConflictLog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("conflict_logs").
		Columns(
			"organization_id",
			"resource_id",
			"conflict_type",
			"conflict_data",
			"severity",
			"status",
		).
		Values(
			log.OrganizationID,
			log.ResourceID,
			log.Type,
			log.Data,
			log.Severity,
			domain.ConflictOpen,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&log.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	log.Status = domain.ConflictOpen
	log.CreatedAt = createdAt.Time
	log.UpdatedAt = updatedAt.Time

	return log, nil
}

// GetByID получает запись журнала по ID (без присоединения ресурса)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ConflictLog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"organization_id",
		"resource_id",
		"conflict_type",
		"conflict_data",
		"severity",
		"status",
		"resolution",
		"resolved_at",
		"resolved_by",
		"resolution_notes",
		"created_at",
		"updated_at",
	).
		From("conflict_logs").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var log domain.ConflictLog
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&log.ID,
		&log.OrganizationID,
		&log.ResourceID,
		&log.Type,
		&log.Data,
		&log.Severity,
		&log.Status,
		&log.Resolution,
		&log.ResolvedAt,
		&log.ResolvedBy,
		&log.ResolutionNotes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConflictNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan conflict log: %v", ErrScanRow, err)
	}

	log.CreatedAt = createdAt.Time
	log.UpdatedAt = updatedAt.Time

	return &log, nil
}

// Resolve переводит запись в терминальный статус (resolved или ignored)
// и проставляет метаданные разрешения.
// Возвращает ErrConflictNotFound, если запись не существует
func (r *Repository) Resolve(
	ctx context.Context,
	id int64,
	status domain.ConflictStatus,
	resolution string,
	resolvedBy int64,
	notes *string,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("conflict_logs").
		Set("status", status).
		Set("resolution", resolution).
		Set("resolved_at", squirrel.Expr("NOW()")).
		Set("resolved_by", resolvedBy).
		Set("resolution_notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Resolve - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Resolve - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Resolve - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConflictNotFound
	}

	return nil
}

// GetByOrganizationWithFilter получает записи журнала организации
// с опциональной фильтрацией по статусу и серьёзности.
// Каждая запись дополняется минимальной идентификацией ресурса
// (id, title, resource_type); сортировка — новые первыми
func (r *Repository) GetByOrganizationWithFilter(ctx context.Context, filter domain.ConflictLogFilter) ([]*domain.ConflictLog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"cl.id",
		"cl.organization_id",
		"cl.resource_id",
		"cl.conflict_type",
		"cl.conflict_data",
		"cl.severity",
		"cl.status",
		"cl.resolution",
		"cl.resolved_at",
		"cl.resolved_by",
		"cl.resolution_notes",
		"cl.created_at",
		"cl.updated_at",
		"r.title",
		"r.resource_type",
	).
		From("conflict_logs cl").
		LeftJoin("resources r ON r.id = cl.resource_id").
		Where(squirrel.Eq{"cl.organization_id": filter.OrganizationID}).
		OrderBy("cl.created_at DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"cl.status": string(*filter.Status)})
	}
	if filter.Severity != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"cl.severity": string(*filter.Severity)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrganizationWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrganizationWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	logs := make([]*domain.ConflictLog, 0)

	for rows.Next() {
		var log domain.ConflictLog
		var createdAt, updatedAt sql.NullTime
		var resourceTitle, resourceType sql.NullString

		err := rows.Scan(
			&log.ID,
			&log.OrganizationID,
			&log.ResourceID,
			&log.Type,
			&log.Data,
			&log.Severity,
			&log.Status,
			&log.Resolution,
			&log.ResolvedAt,
			&log.ResolvedBy,
			&log.ResolutionNotes,
			&createdAt,
			&updatedAt,
			&resourceTitle,
			&resourceType,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByOrganizationWithFilter - scan row: %v", ErrScanRow, err)
		}

		log.CreatedAt = createdAt.Time
		log.UpdatedAt = updatedAt.Time

		// LEFT JOIN: ресурс мог быть удалён из каталога
		if resourceTitle.Valid {
			log.Resource = &domain.ResourceRef{
				ID:           log.ResourceID,
				Title:        resourceTitle.String,
				ResourceType: resourceType.String,
			}
		}

		logs = append(logs, &log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByOrganizationWithFilter - rows error: %v", ErrScanRow, err)
	}

	return logs, nil
}
