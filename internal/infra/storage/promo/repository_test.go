package promo

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
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

func TestRepository_GetByCode_NormalizesAndScansArray(t *testing.T) {
	repo, mock := newMock(t)
	until := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM promos WHERE code = $1")).
		WithArgs("DISKON10").
		WillReturnRows(sqlmock.NewRows(promoColumns).AddRow(
			1, "DISKON10", "Diskon", "", "percentage", 10.0, nil, until, "{2,5}", "", now, now,
		))

	p, err := repo.GetByCode(context.Background(), "  diskon10 ")
	require.NoError(t, err)

	assert.Equal(t, domain.DiscountPercentage, p.DiscountType)
	assert.Equal(t, []int64{2, 5}, p.ApplicableServices)
	assert.Nil(t, p.ValidFrom)
	assert.True(t, p.IsScoped())
}

func TestRepository_GetByCode_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM promos WHERE code = $1")).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByCode(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrPromoNotFound)
}

func TestRepository_List_OrderedByValidUntil(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM promos ORDER BY valid_until DESC, id DESC")).
		WillReturnRows(sqlmock.NewRows(promoColumns).AddRow(
			1, "ALL", "Semua", "", "fixed", 50000.0, nil, time.Now(), nil, "", time.Now(), time.Now(),
		))

	promos, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, promos, 1)
	assert.Equal(t, []int64{}, promos[0].ApplicableServices)
}

func TestRepository_Create_Duplicate(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO promos")).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.Promo{Code: "DISKON10", DiscountType: domain.DiscountFixed, Value: 1})
	assert.ErrorIs(t, err, ErrPromoAlreadyExists)
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM promos WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 4), ErrPromoNotFound)
}
