package booking

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopService/pkg/ptr"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

var bookingRowColumns = []string{
	"id", "customer_name", "plate_number", "phone", "vehicle_type", "booking_date", "notes", "check_only",
	"status", "mechanic_id", "name", "mechanic_notes", "promo_code", "subtotal", "discount", "total",
	"created_at", "updated_at",
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	booking := &domain.Booking{
		CustomerName: "Budi",
		PlateNumber:  "B1234XYZ",
		Phone:        "081234",
		VehicleType:  domain.VehicleSUV,
		BookingDate:  time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		Status:       domain.StatusPending,
		Subtotal:     600000,
		Total:        600000,
		Items: []domain.BookingItem{
			{ServiceID: 1, ServiceName: "Ganti Oli", OptionID: 101, OptionName: "Oli", Price: 450000},
			{ServiceID: 1, ServiceName: "Ganti Oli", OptionID: 102, OptionName: "Filter", Price: 150000},
		},
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings (customer_name,plate_number")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(10, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO booking_items (booking_id,service_id,service_name,option_id,option_name,price) VALUES ($1,$2,$3,$4,$5,$6),($7,$8,$9,$10,$11,$12) RETURNING id")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100).AddRow(101))

	created, err := repo.Create(context.Background(), booking)
	require.NoError(t, err)

	assert.Equal(t, int64(10), created.ID)
	assert.Equal(t, int64(10), created.Items[1].BookingID)
	assert.Equal(t, int64(101), created.Items[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings b LEFT JOIN users u ON u.id = b.mechanic_id WHERE b.id = $1")).
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_GetByID_WithItems(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE b.id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns).AddRow(
			5, "Budi", "B1234XYZ", "0812", "SUV", now, nil, false,
			"in_progress", 7, "Andi", nil, "DISKON10", 100000.0, 10000.0, 90000.0, now, now,
		))
	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_items WHERE booking_id IN ($1) ORDER BY id ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "service_id", "service_name", "option_id", "option_name", "price"}).
			AddRow(1, 5, 1, "Ganti Oli", 101, "Oli", 100000.0))

	booking, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusInProgress, booking.Status)
	assert.Equal(t, ptr.Ptr(int64(7)), booking.MechanicID)
	assert.Equal(t, "Andi", *booking.MechanicName)
	assert.Nil(t, booking.Notes)
	require.Len(t, booking.Items, 1)
	assert.Equal(t, "Ganti Oli", booking.Items[0].ServiceName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_AppliesFilter(t *testing.T) {
	repo, mock := newMock(t)
	status := domain.StatusPending
	date := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE b.booking_date = $1 AND b.status = $2 AND (b.plate_number ILIKE $3 OR b.customer_name ILIKE $4 OR EXISTS")).
		WithArgs("2026-07-01", status, "%oli%", "%oli%", "%oli%").
		WillReturnRows(sqlmock.NewRows(bookingRowColumns))

	bookings, err := repo.List(context.Background(), domain.BookingsFilter{
		Date:   &date,
		Status: &status,
		Search: " oli ",
		Limit:  10,
	})
	require.NoError(t, err)
	assert.Empty(t, bookings)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs(domain.StatusCompleted, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 9, domain.StatusCompleted)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_Stats(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*), COALESCE(SUM(total), 0) FROM bookings GROUP BY status")).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count", "sum"}).
			AddRow("pending", 2, 300000.0).
			AddRow("completed", 3, 1500000.0).
			AddRow("cancelled", 1, 100000.0))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 3, stats.Completed)
	assert.Equal(t, 1, stats.Cancelled)
	assert.Equal(t, 1500000.0, stats.Revenue)
}

func TestRepository_ListCustomers(t *testing.T) {
	repo, mock := newMock(t)
	last := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings b GROUP BY b.plate_number ORDER BY b.plate_number ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"plate", "name", "phone", "vehicle", "last", "last_id", "count"}).
			AddRow("B1", "Budi", "0812", "SUV", last, 4, 3).
			AddRow("D2", "Sari", "0813", "MPV", nil, nil, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_items WHERE booking_id IN ($1)")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "service_id", "service_name", "option_id", "option_name", "price"}).
			AddRow(1, 4, 1, "Ganti Oli", 101, "Oli", 1.0).
			AddRow(2, 4, 1, "Ganti Oli", 102, "Filter", 1.0).
			AddRow(3, 4, 2, "Servis Rem", 201, "Kampas", 1.0))

	customers, err := repo.ListCustomers(context.Background(), domain.CustomersFilter{})
	require.NoError(t, err)
	require.Len(t, customers, 2)

	assert.Equal(t, "Ganti Oli, Servis Rem", customers[0].LastServiceType)
	assert.Equal(t, last, *customers[0].LastServiceDate)
	assert.Nil(t, customers[1].LastServiceDate)
	assert.Equal(t, 1, customers[1].BookingsCount)
	require.NoError(t, mock.ExpectationsWereMet())
}
