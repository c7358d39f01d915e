package sparepart

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopService/pkg/ptr"
)

func newMock(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), wrapped, mock
}

func TestRepository_List_StatusBands(t *testing.T) {
	tests := []struct {
		status domain.StockStatus
		where  string
		args   []interface{}
	}{
		{domain.StockOutOfStock, "WHERE stock <= $1", []interface{}{0}},
		{domain.StockLow, "WHERE (stock > $1 AND stock <= $2)", []interface{}{0, 5}},
		{domain.StockWarning, "WHERE (stock > $1 AND stock <= $2)", []interface{}{5, 10}},
		{domain.StockHealthy, "WHERE stock > $1", []interface{}{10}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			repo, _, mock := newMock(t)
			expectArgs := make([]driver.Value, len(tt.args))
			for i, a := range tt.args {
				expectArgs[i] = a
			}

			mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, code, price, stock, created_at, updated_at FROM spareparts " + tt.where + " ORDER BY name ASC, id ASC LIMIT 10 OFFSET 0")).
				WithArgs(expectArgs...).
				WillReturnRows(sqlmock.NewRows(sparepartColumns).AddRow(1, "Filter Oli", "FO-1", 50000.0, 3, time.Now(), time.Now()))

			parts, err := repo.List(context.Background(), domain.SparepartsFilter{Status: ptr.Ptr(tt.status), Limit: 10})
			require.NoError(t, err)
			require.Len(t, parts, 1)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_GetByID_LocksInsideTransaction(t *testing.T) {
	repo, wrapped, mock := newMock(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM spareparts WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(sparepartColumns).AddRow(3, "Busi", "BS-1", 25000.0, 12, now, now))
	mock.ExpectRollback()

	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	part, err := repo.GetByID(dbmetrics.WithTx(context.Background(), tx), 3)
	require.NoError(t, err)
	assert.Equal(t, domain.StockHealthy, part.StockStatus())

	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM spareparts WHERE id = $1")).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 3)
	assert.ErrorIs(t, err, ErrSparepartNotFound)
}

func TestRepository_Create_DuplicateCode(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO spareparts (name,code,price,stock) VALUES ($1,$2,$3,$4) RETURNING id, created_at, updated_at")).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.Sparepart{Name: "Busi", Code: "BS-1"})
	assert.ErrorIs(t, err, ErrSparepartAlreadyExists)
}

func TestRepository_AdjustStock(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE spareparts SET stock = stock + $1, updated_at = NOW() WHERE id = $2 RETURNING stock")).
		WithArgs(-4, int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(8))

	stock, err := repo.AdjustStock(context.Background(), 3, -4)
	require.NoError(t, err)
	assert.Equal(t, 8, stock)
}

func TestRepository_Delete_WithMovements(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM spareparts WHERE id = $1")).
		WillReturnError(&pq.Error{Code: "23503"})

	assert.ErrorIs(t, repo.Delete(context.Background(), 3), ErrSparepartInUse)
}
