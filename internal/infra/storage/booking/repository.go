package booking

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"b.id",
	"b.customer_name",
	"b.plate_number",
	"b.phone",
	"b.vehicle_type",
	"b.booking_date",
	"b.notes",
	"b.check_only",
	"b.status",
	"b.mechanic_id",
	"u.name",
	"b.mechanic_notes",
	"b.promo_code",
	"b.subtotal",
	"b.discount",
	"b.total",
	"b.created_at",
	"b.updated_at",
}

// Repository репозиторий для работы с бронированиями и их позициями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование и его позиции
// Бронирование и позиции должны попасть в БД атомарно, поэтому вызывающий код оборачивает Create в транзакцию
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_name",
			"plate_number",
			"phone",
			"vehicle_type",
			"booking_date",
			"notes",
			"check_only",
			"status",
			"promo_code",
			"subtotal",
			"discount",
			"total",
		).
		Values(
			booking.CustomerName,
			booking.PlateNumber,
			booking.Phone,
			booking.VehicleType,
			booking.BookingDate,
			booking.Notes,
			booking.CheckOnly,
			booking.Status,
			booking.PromoCode,
			booking.Subtotal,
			booking.Discount,
			booking.Total,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	if len(booking.Items) == 0 {
		return booking, nil
	}

	itemsInsert := psqlbuilder.Insert("booking_items").
		Columns("booking_id", "service_id", "service_name", "option_id", "option_name", "price")
	for i := range booking.Items {
		booking.Items[i].BookingID = booking.ID
		item := booking.Items[i]
		itemsInsert = itemsInsert.Values(item.BookingID, item.ServiceID, item.ServiceName, item.OptionID, item.OptionName, item.Price)
	}

	query, args, err = itemsInsert.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build items insert: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - insert items: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for i := 0; rows.Next() && i < len(booking.Items); i++ {
		if err := rows.Scan(&booking.Items[i].ID); err != nil {
			return nil, fmt.Errorf("%w: Create - scan item id: %v", ErrScanRow, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Create - items rows error: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID вместе с позициями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		LeftJoin("users u ON u.id = b.mechanic_id").
		Where(squirrel.Eq{"b.id": id})

	// Внутри транзакции блокируем строку для смены статуса
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	if err := r.attachItems(ctx, []*domain.Booking{booking}); err != nil {
		return nil, err
	}

	return booking, nil
}

// List возвращает бронирования по фильтру, новые даты первыми
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(
		psqlbuilder.Select(bookingColumns...).
			From("bookings b").
			LeftJoin("users u ON u.id = b.mechanic_id"),
		filter,
	).OrderBy("b.booking_date DESC", "b.id DESC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit).Offset(filter.Offset)
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

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	if err := r.attachItems(ctx, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// Count возвращает количество бронирований по фильтру без учета пагинации
func (r *Repository) Count(ctx context.Context, filter domain.BookingsFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilter(psqlbuilder.Select("COUNT(*)").From("bookings b"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: Count - scan: %v", ErrScanRow, err)
	}

	return total, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.update(ctx, "UpdateStatus", id, map[string]interface{}{"status": status})
}

// AssignMechanic назначает механика на бронирование
func (r *Repository) AssignMechanic(ctx context.Context, id int64, mechanicID int64) error {
	return r.update(ctx, "AssignMechanic", id, map[string]interface{}{"mechanic_id": mechanicID})
}

// UpdateMechanicNotes сохраняет заметки механика
func (r *Repository) UpdateMechanicNotes(ctx context.Context, id int64, notes string) error {
	return r.update(ctx, "UpdateMechanicNotes", id, map[string]interface{}{"mechanic_notes": notes})
}

func (r *Repository) update(ctx context.Context, op string, id int64, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		SetMap(values).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Stats считает бронирования по статусам и выручку завершенных
func (r *Repository) Stats(ctx context.Context) (*domain.BookingStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)", "COALESCE(SUM(total), 0)").
		From("bookings").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stats := &domain.BookingStats{}
	for rows.Next() {
		var (
			status domain.BookingStatus
			count  int
			sum    float64
		)
		if err := rows.Scan(&status, &count, &sum); err != nil {
			return nil, fmt.Errorf("%w: Stats - scan row: %v", ErrScanRow, err)
		}

		stats.Total += count
		switch status {
		case domain.StatusPending:
			stats.Pending = count
		case domain.StatusInProgress:
			stats.InProgress = count
		case domain.StatusCompleted:
			stats.Completed = count
			stats.Revenue = sum
		case domain.StatusCancelled:
			stats.Cancelled = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Stats - rows error: %v", ErrScanRow, err)
	}

	return stats, nil
}

// ListCustomers агрегирует клиентов из бронирований по госномеру
// Имя, телефон и тип кузова берутся из последнего бронирования, дата обслуживания из последнего завершенного
func (r *Repository) ListCustomers(ctx context.Context, filter domain.CustomersFilter) ([]*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"b.plate_number",
		"(array_agg(b.customer_name ORDER BY b.created_at DESC))[1]",
		"(array_agg(b.phone ORDER BY b.created_at DESC))[1]",
		"(array_agg(b.vehicle_type ORDER BY b.created_at DESC))[1]",
		"MAX(b.booking_date) FILTER (WHERE b.status = 'completed')",
		"(array_agg(b.id ORDER BY b.booking_date DESC, b.id DESC) FILTER (WHERE b.status = 'completed'))[1]",
		"COUNT(*)",
	).
		From("bookings b").
		GroupBy("b.plate_number").
		OrderBy("b.plate_number ASC")

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"b.plate_number": pattern},
			squirrel.ILike{"b.customer_name": pattern},
		})
	}
	if filter.PlateNumber != "" {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.plate_number": strings.ToUpper(filter.PlateNumber)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCustomers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCustomers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	customers := make([]*domain.Customer, 0)
	lastBookingIDs := make(map[int64]*domain.Customer)
	for rows.Next() {
		var (
			customer    domain.Customer
			lastService sql.NullTime
			lastBooking sql.NullInt64
		)
		if err := rows.Scan(
			&customer.PlateNumber,
			&customer.Name,
			&customer.Phone,
			&customer.VehicleType,
			&lastService,
			&lastBooking,
			&customer.BookingsCount,
		); err != nil {
			return nil, fmt.Errorf("%w: ListCustomers - scan row: %v", ErrScanRow, err)
		}

		if lastService.Valid {
			t := lastService.Time
			customer.LastServiceDate = &t
		}
		customers = append(customers, &customer)
		if lastBooking.Valid {
			lastBookingIDs[lastBooking.Int64] = &customer
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCustomers - rows error: %v", ErrScanRow, err)
	}

	if err := r.attachLastServiceTypes(ctx, lastBookingIDs); err != nil {
		return nil, err
	}

	return customers, nil
}

// attachLastServiceTypes заполняет LastServiceType названиями услуг последнего завершенного бронирования
func (r *Repository) attachLastServiceTypes(ctx context.Context, byBookingID map[int64]*domain.Customer) error {
	if len(byBookingID) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(byBookingID))
	for id := range byBookingID {
		ids = append(ids, id)
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return err
	}

	for bookingID, customer := range byBookingID {
		b := domain.Booking{Items: items[bookingID]}
		customer.LastServiceType = strings.Join(b.ServiceNames(), ", ")
	}

	return nil
}

// attachItems загружает позиции для набора бронирований одним запросом
func (r *Repository) attachItems(ctx context.Context, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]int64, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return err
	}

	for _, b := range bookings {
		b.Items = items[b.ID]
		if b.Items == nil {
			b.Items = []domain.BookingItem{}
		}
	}

	return nil
}

func (r *Repository) loadItems(ctx context.Context, bookingIDs []int64) (map[int64][]domain.BookingItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "service_id", "service_name", "option_id", "option_name", "price").
		From("booking_items").
		Where(squirrel.Eq{"booking_id": bookingIDs}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make(map[int64][]domain.BookingItem, len(bookingIDs))
	for rows.Next() {
		var item domain.BookingItem
		if err := rows.Scan(
			&item.ID,
			&item.BookingID,
			&item.ServiceID,
			&item.ServiceName,
			&item.OptionID,
			&item.OptionName,
			&item.Price,
		); err != nil {
			return nil, fmt.Errorf("%w: loadItems - scan row: %v", ErrScanRow, err)
		}
		items[item.BookingID] = append(items[item.BookingID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

// applyFilter добавляет условия фильтра к запросу по таблице bookings b
func applyFilter(builder squirrel.SelectBuilder, filter domain.BookingsFilter) squirrel.SelectBuilder {
	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"b.booking_date": filter.Date.Format(domain.DateFormat)})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"b.status": *filter.Status})
	}
	if filter.MechanicID != nil {
		builder = builder.Where(squirrel.Eq{"b.mechanic_id": *filter.MechanicID})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"b.plate_number": pattern},
			squirrel.ILike{"b.customer_name": pattern},
			squirrel.Expr("EXISTS (SELECT 1 FROM booking_items bi WHERE bi.booking_id = b.id AND bi.service_name ILIKE ?)", pattern),
		})
	}
	return builder
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	if err := row.Scan(
		&booking.ID,
		&booking.CustomerName,
		&booking.PlateNumber,
		&booking.Phone,
		&booking.VehicleType,
		&booking.BookingDate,
		&booking.Notes,
		&booking.CheckOnly,
		&booking.Status,
		&booking.MechanicID,
		&booking.MechanicName,
		&booking.MechanicNotes,
		&booking.PromoCode,
		&booking.Subtotal,
		&booking.Discount,
		&booking.Total,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &booking, nil
}
