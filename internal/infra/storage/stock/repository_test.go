package stock

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/pkg/dbmetrics"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_MonthlyReport(t *testing.T) {
	repo, mock := newMock(t)
	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN stock_movements m ON m.sparepart_id = s.id AND m.movement_date >= $1 AND m.movement_date < $2 GROUP BY s.id, s.name, s.code, s.stock ORDER BY s.name ASC")).
		WithArgs("2026-05-01", "2026-06-01").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "in", "out", "stock"}).
			AddRow(1, "Busi", "BS-1", 20, 15, 9).
			AddRow(2, "Filter Oli", "FO-1", 0, 0, 30))

	report, err := repo.MonthlyReport(context.Background(), from, from.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, report, 2)

	assert.Equal(t, domain.StockReportRow{SparepartID: 1, Name: "Busi", Code: "BS-1", StockIn: 20, StockOut: 15, Remaining: 9, IsLow: true}, report[0])
	assert.False(t, report[1].IsLow)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_Filters(t *testing.T) {
	repo, mock := newMock(t)
	out := domain.MovementOut
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE m.direction = $1 AND (s.name ILIKE $2 OR u.name ILIKE $3)")).
		WithArgs(out, "%busi%", "%busi%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "sparepart_id", "s_name", "direction", "quantity", "movement_date", "user_id", "u_name", "note", "created_at"}).
			AddRow(5, 1, "Busi", "out", 2, now, 3, "Gudang", "", now))

	movements, err := repo.List(context.Background(), domain.MovementsFilter{Direction: &out, Search: "busi"})
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, -2, movements[0].Delta())
	assert.Equal(t, "Gudang", movements[0].UserName)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO stock_movements (sparepart_id,direction,quantity,movement_date,user_id,note) VALUES ($1,$2,$3,$4,$5,$6) RETURNING id, created_at")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(11, time.Now()))

	m, err := repo.Create(context.Background(), &domain.StockMovement{SparepartID: 1, Direction: domain.MovementIn, Quantity: 5, UserID: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(11), m.ID)
}
