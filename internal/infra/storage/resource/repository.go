package resource

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

// Repository репозиторий для чтения ресурсов
// Ресурсы принадлежат каталогу организации и здесь только читаются
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает ресурс по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"organization_id",
		"title",
		"resource_type",
		"capacity",
		"is_active",
		"is_bookable",
		"created_at",
		"updated_at",
	).
		From("resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var res domain.Resource
	var capacity sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&res.OrganizationID,
		&res.Title,
		&res.ResourceType,
		&capacity,
		&res.IsActive,
		&res.IsBookable,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan resource: %v", ErrScanRow, err)
	}

	// capacity NULL означает неограниченную вместимость
	if capacity.Valid {
		c := int(capacity.Int64)
		res.Capacity = &c
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}
