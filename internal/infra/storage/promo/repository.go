package promo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopService/pkg/pgerr"
	"github.com/m04kA/SMC-WorkshopService/pkg/psqlbuilder"
)

var promoColumns = []string{
	"id",
	"code",
	"name",
	"description",
	"discount_type",
	"value",
	"valid_from",
	"valid_until",
	"applicable_services",
	"image",
	"created_at",
	"updated_at",
}

// Repository репозиторий промокодов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория промокодов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все промокоды, сначала с самым поздним сроком действия
func (r *Repository) List(ctx context.Context) ([]domain.Promo, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(promoColumns...).
		From("promos").
		OrderBy("valid_until DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	promos := make([]domain.Promo, 0)
	for rows.Next() {
		p, err := scanPromo(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		promos = append(promos, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return promos, nil
}

// GetByID получает промокод по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Promo, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByCode получает промокод по нормализованному коду
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Promo, error) {
	return r.getOne(ctx, "GetByCode", squirrel.Eq{"code": domain.NormalizePromoCode(code)})
}

// Create сохраняет новый промокод
func (r *Repository) Create(ctx context.Context, p *domain.Promo) (*domain.Promo, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("promos").
		Columns("code", "name", "description", "discount_type", "value", "valid_from", "valid_until", "applicable_services", "image").
		Values(p.Code, p.Name, p.Description, p.DiscountType, p.Value, p.ValidFrom, p.ValidUntil, pq.Array(serviceIDs(p)), p.Image).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrPromoAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// Update обновляет промокод целиком
func (r *Repository) Update(ctx context.Context, p *domain.Promo) (*domain.Promo, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("promos").
		Set("code", p.Code).
		Set("name", p.Name).
		Set("description", p.Description).
		Set("discount_type", p.DiscountType).
		Set("value", p.Value).
		Set("valid_from", p.ValidFrom).
		Set("valid_until", p.ValidUntil).
		Set("applicable_services", pq.Array(serviceIDs(p))).
		Set("image", p.Image).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.CreatedAt, &p.UpdatedAt)
	switch {
	case err == sql.ErrNoRows:
		return nil, ErrPromoNotFound
	case pgerr.IsUniqueViolation(err):
		return nil, ErrPromoAlreadyExists
	case err != nil:
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return p, nil
}

// Delete удаляет промокод
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("promos").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPromoNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Promo, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(promoColumns...).From("promos").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	p, err := scanPromo(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPromoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan promo: %v", ErrScanRow, op, err)
	}

	return p, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPromo(row rowScanner) (*domain.Promo, error) {
	var (
		p         domain.Promo
		validFrom sql.NullTime
		services  pq.Int64Array
	)
	if err := row.Scan(
		&p.ID,
		&p.Code,
		&p.Name,
		&p.Description,
		&p.DiscountType,
		&p.Value,
		&validFrom,
		&p.ValidUntil,
		&services,
		&p.Image,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if validFrom.Valid {
		t := validFrom.Time
		p.ValidFrom = &t
	}
	p.ApplicableServices = []int64(services)
	if p.ApplicableServices == nil {
		p.ApplicableServices = []int64{}
	}

	return &p, nil
}

// serviceIDs пустой массив вместо NULL
func serviceIDs(p *domain.Promo) []int64 {
	if p.ApplicableServices == nil {
		return []int64{}
	}
	return p.ApplicableServices
}
