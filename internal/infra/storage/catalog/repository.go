package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopService/pkg/psqlbuilder"
)

// Repository репозиторий каталога услуг и их опций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все услуги с опциями, упорядоченные по категории и названию
func (r *Repository) List(ctx context.Context) ([]domain.Service, error) {
	return r.selectServices(ctx, "List", nil)
}

// GetByIDs возвращает услуги с указанными ID. Отсутствующие ID пропускаются
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Service, error) {
	if len(ids) == 0 {
		return []domain.Service{}, nil
	}
	return r.selectServices(ctx, "GetByIDs", squirrel.Eq{"id": ids})
}

// GetByID возвращает услугу с опциями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	services, err := r.selectServices(ctx, "GetByID", squirrel.Eq{"id": id})
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, ErrServiceNotFound
	}
	return &services[0], nil
}

// Create сохраняет услугу и ее опции. Вызывающий код оборачивает в транзакцию
func (r *Repository) Create(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns("name", "description", "duration_minutes", "category").
		Values(service.Name, service.Description, service.DurationMinutes, service.Category).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&service.ID, &service.CreatedAt, &service.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	if err := r.insertOptions(ctx, "Create", service); err != nil {
		return nil, err
	}

	return service, nil
}

// Update обновляет услугу и полностью заменяет список ее опций
func (r *Repository) Update(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("name", service.Name).
		Set("description", service.Description).
		Set("duration_minutes", service.DurationMinutes).
		Set("category", service.Category).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": service.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&service.CreatedAt, &service.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	query, args, err = psqlbuilder.Delete("service_options").Where(squirrel.Eq{"service_id": service.ID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build delete options query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Update - delete options: %v", ErrExecQuery, err)
	}

	if err := r.insertOptions(ctx, "Update", service); err != nil {
		return nil, err
	}

	return service, nil
}

// Delete удаляет услугу (опции удаляются каскадно)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("services").Where(squirrel.Eq{"id": id}).ToSql()
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
		return ErrServiceNotFound
	}

	return nil
}

func (r *Repository) insertOptions(ctx context.Context, op string, service *domain.Service) error {
	if len(service.Options) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert("service_options").Columns("service_id", "name", "price")
	for i := range service.Options {
		service.Options[i].ServiceID = service.ID
		insert = insert.Values(service.ID, service.Options[i].Name, service.Options[i].Price)
	}

	query, args, err := insert.Suffix("RETURNING id").ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build options insert: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - insert options: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	for i := 0; rows.Next() && i < len(service.Options); i++ {
		if err := rows.Scan(&service.Options[i].ID); err != nil {
			return fmt.Errorf("%w: %s - scan option id: %v", ErrScanRow, op, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %s - options rows error: %v", ErrScanRow, op, err)
	}

	return nil
}

func (r *Repository) selectServices(ctx context.Context, op string, where squirrel.Sqlizer) ([]domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "name", "description", "duration_minutes", "category", "created_at", "updated_at").
		From("services").
		OrderBy("category ASC", "name ASC")
	if where != nil {
		selectBuilder = selectBuilder.Where(where)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.DurationMinutes, &s.Category, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: %s - scan service: %v", ErrScanRow, op, err)
		}
		s.Options = []domain.ServiceOption{}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	if len(services) == 0 {
		return services, nil
	}

	if err := r.attachOptions(ctx, op, services); err != nil {
		return nil, err
	}

	return services, nil
}

func (r *Repository) attachOptions(ctx context.Context, op string, services []domain.Service) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	index := make(map[int64]int, len(services))
	ids := make([]int64, len(services))
	for i, s := range services {
		index[s.ID] = i
		ids[i] = s.ID
	}

	query, args, err := psqlbuilder.Select("id", "service_id", "name", "price").
		From("service_options").
		Where(squirrel.Eq{"service_id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build options query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute options query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var opt domain.ServiceOption
		if err := rows.Scan(&opt.ID, &opt.ServiceID, &opt.Name, &opt.Price); err != nil {
			return fmt.Errorf("%w: %s - scan option: %v", ErrScanRow, op, err)
		}
		if i, ok := index[opt.ServiceID]; ok {
			services[i].Options = append(services[i].Options, opt)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %s - options rows error: %v", ErrScanRow, op, err)
	}

	return nil
}
