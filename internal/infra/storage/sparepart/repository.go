package sparepart

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopService/pkg/pgerr"
	"github.com/m04kA/SMC-WorkshopService/pkg/psqlbuilder"
)

var sparepartColumns = []string{"id", "name", "code", "price", "stock", "created_at", "updated_at"}

// Repository репозиторий запчастей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория запчастей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает запчасти по фильтру, отсортированные по названию
func (r *Repository) List(ctx context.Context, filter domain.SparepartsFilter) ([]*domain.Sparepart, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(psqlbuilder.Select(sparepartColumns...).From("spareparts"), filter).
		OrderBy("name ASC", "id ASC")
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit).Offset(filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "List", query, args)
}

// Count количество запчастей по фильтру без учета пагинации
func (r *Repository) Count(ctx context.Context, filter domain.SparepartsFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilter(psqlbuilder.Select("COUNT(*)").From("spareparts"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: Count - scan: %v", ErrScanRow, err)
	}
	return total, nil
}

// ListLowStock запчасти в полосах out_of_stock, low и warning
func (r *Repository) ListLowStock(ctx context.Context) ([]*domain.Sparepart, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sparepartColumns...).
		From("spareparts").
		Where(squirrel.LtOrEq{"stock": domain.StockWarningThreshold}).
		OrderBy("stock ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListLowStock - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListLowStock", query, args)
}

// GetByID получает запчасть по ID
// Внутри транзакции строка блокируется (FOR UPDATE) для изменения остатка
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Sparepart, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sparepartColumns...).From("spareparts").Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	part, err := scanSparepart(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSparepartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan sparepart: %v", ErrScanRow, err)
	}

	return part, nil
}

// Create сохраняет новую запчасть
func (r *Repository) Create(ctx context.Context, part *domain.Sparepart) (*domain.Sparepart, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("spareparts").
		Columns("name", "code", "price", "stock").
		Values(part.Name, part.Code, part.Price, part.Stock).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&part.ID, &part.CreatedAt, &part.UpdatedAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrSparepartAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return part, nil
}

// Update обновляет название, код, цену и остаток
func (r *Repository) Update(ctx context.Context, part *domain.Sparepart) (*domain.Sparepart, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("spareparts").
		Set("name", part.Name).
		Set("code", part.Code).
		Set("price", part.Price).
		Set("stock", part.Stock).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": part.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&part.CreatedAt, &part.UpdatedAt)
	switch {
	case err == sql.ErrNoRows:
		return nil, ErrSparepartNotFound
	case pgerr.IsUniqueViolation(err):
		return nil, ErrSparepartAlreadyExists
	case err != nil:
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return part, nil
}

// AdjustStock изменяет остаток на delta и возвращает новое значение
func (r *Repository) AdjustStock(ctx context.Context, id int64, delta int) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("spareparts").
		Set("stock", squirrel.Expr("stock + ?", delta)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING stock").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: AdjustStock - build update query: %v", ErrBuildQuery, err)
	}

	var stock int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&stock)
	if err == sql.ErrNoRows {
		return 0, ErrSparepartNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: AdjustStock - execute update: %v", ErrExecQuery, err)
	}

	return stock, nil
}

// Delete удаляет запчасть без истории движений
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("spareparts").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerr.IsForeignKeyViolation(err) {
		return ErrSparepartInUse
	}
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSparepartNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.Sparepart, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	parts := make([]*domain.Sparepart, 0)
	for rows.Next() {
		part, err := scanSparepart(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		parts = append(parts, part)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return parts, nil
}

// applyFilter переводит полосу остатка в диапазон значений stock
func applyFilter(builder squirrel.SelectBuilder, filter domain.SparepartsFilter) squirrel.SelectBuilder {
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"code": pattern},
		})
	}

	if filter.Status != nil {
		switch *filter.Status {
		case domain.StockOutOfStock:
			builder = builder.Where(squirrel.LtOrEq{"stock": 0})
		case domain.StockLow:
			builder = builder.Where(squirrel.And{
				squirrel.Gt{"stock": 0},
				squirrel.LtOrEq{"stock": domain.StockLowThreshold},
			})
		case domain.StockWarning:
			builder = builder.Where(squirrel.And{
				squirrel.Gt{"stock": domain.StockLowThreshold},
				squirrel.LtOrEq{"stock": domain.StockWarningThreshold},
			})
		case domain.StockHealthy:
			builder = builder.Where(squirrel.Gt{"stock": domain.StockWarningThreshold})
		}
	}

	return builder
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSparepart(row rowScanner) (*domain.Sparepart, error) {
	var part domain.Sparepart
	if err := row.Scan(&part.ID, &part.Name, &part.Code, &part.Price, &part.Stock, &part.CreatedAt, &part.UpdatedAt); err != nil {
		return nil, err
	}
	return &part, nil
}
