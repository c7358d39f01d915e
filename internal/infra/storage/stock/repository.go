package stock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopService/pkg/psqlbuilder"
)

// Repository журнал движений склада (barang masuk / keluar)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория движений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в журнал. Остаток запчасти меняется отдельно, в той же транзакции
func (r *Repository) Create(ctx context.Context, m *domain.StockMovement) (*domain.StockMovement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("stock_movements").
		Columns("sparepart_id", "direction", "quantity", "movement_date", "user_id", "note").
		Values(m.SparepartID, m.Direction, m.Quantity, m.MovementDate, m.UserID, m.Note).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return m, nil
}

// List возвращает движения по фильтру, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.MovementsFilter) ([]*domain.StockMovement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"m.id",
		"m.sparepart_id",
		"s.name",
		"m.direction",
		"m.quantity",
		"m.movement_date",
		"COALESCE(m.user_id, 0)",
		"COALESCE(u.name, '')",
		"m.note",
		"m.created_at",
	).
		From("stock_movements m").
		Join("spareparts s ON s.id = m.sparepart_id").
		LeftJoin("users u ON u.id = m.user_id").
		OrderBy("m.movement_date DESC", "m.id DESC")

	if filter.Direction != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"m.direction": *filter.Direction})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"m.movement_date": filter.Date.Format(domain.DateFormat)})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"m.movement_date": filter.From.Format(domain.DateFormat)})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"m.movement_date": filter.To.Format(domain.DateFormat)})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"s.name": pattern},
			squirrel.ILike{"u.name": pattern},
		})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	movements := make([]*domain.StockMovement, 0)
	for rows.Next() {
		var m domain.StockMovement
		if err := rows.Scan(
			&m.ID,
			&m.SparepartID,
			&m.SparepartName,
			&m.Direction,
			&m.Quantity,
			&m.MovementDate,
			&m.UserID,
			&m.UserName,
			&m.Note,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		movements = append(movements, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return movements, nil
}

// MonthlyReport суммирует приход и расход по каждой запчасти за период [from, to)
func (r *Repository) MonthlyReport(ctx context.Context, from, to time.Time) ([]domain.StockReportRow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.name",
		"s.code",
		"COALESCE(SUM(m.quantity) FILTER (WHERE m.direction = 'in'), 0)",
		"COALESCE(SUM(m.quantity) FILTER (WHERE m.direction = 'out'), 0)",
		"s.stock",
	).
		From("spareparts s").
		LeftJoin("stock_movements m ON m.sparepart_id = s.id AND m.movement_date >= ? AND m.movement_date < ?",
			from.Format(domain.DateFormat), to.Format(domain.DateFormat)).
		GroupBy("s.id", "s.name", "s.code", "s.stock").
		OrderBy("s.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: MonthlyReport - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: MonthlyReport - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	report := make([]domain.StockReportRow, 0)
	for rows.Next() {
		var row domain.StockReportRow
		if err := rows.Scan(&row.SparepartID, &row.Name, &row.Code, &row.StockIn, &row.StockOut, &row.Remaining); err != nil {
			return nil, fmt.Errorf("%w: MonthlyReport - scan row: %v", ErrScanRow, err)
		}
		part := domain.Sparepart{Stock: row.Remaining}
		row.IsLow = part.IsLowForReport()
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: MonthlyReport - rows error: %v", ErrScanRow, err)
	}

	return report, nil
}
