package stock

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/internal/service/stock/models"
	"github.com/m04kA/SMC-WorkshopService/pkg/logger"
	"github.com/m04kA/SMC-WorkshopService/pkg/ptr"
)

type fakeRepo struct {
	filter   domain.MovementsFilter
	from, to time.Time
	rows     []domain.StockReportRow
}

func (r *fakeRepo) List(_ context.Context, filter domain.MovementsFilter) ([]*domain.StockMovement, error) {
	r.filter = filter
	return []*domain.StockMovement{{ID: 1, Direction: domain.MovementOut, Quantity: 2, MovementDate: time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC)}}, nil
}

func (r *fakeRepo) MonthlyReport(_ context.Context, from, to time.Time) ([]domain.StockReportRow, error) {
	r.from, r.to = from, to
	return r.rows, nil
}

func newService(repo *fakeRepo) *Service {
	return NewService(repo, logger.NewWithWriter(io.Discard, logger.LevelError))
}

func TestService_ListMovements(t *testing.T) {
	repo := &fakeRepo{}
	s := newService(repo)

	resp, err := s.ListMovements(context.Background(), &models.ListMovementsRequest{Direction: ptr.Ptr("out"), Date: ptr.Ptr("2026-05-03"), Search: " busi "})
	require.NoError(t, err)
	require.Len(t, resp.Movements, 1)
	assert.Equal(t, "2026-05-03", resp.Movements[0].MovementDate)

	assert.Equal(t, domain.MovementOut, *repo.filter.Direction)
	assert.Equal(t, "busi", repo.filter.Search)

	_, err = s.ListMovements(context.Background(), &models.ListMovementsRequest{Direction: ptr.Ptr("sideways")})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = s.ListMovements(context.Background(), &models.ListMovementsRequest{Date: ptr.Ptr("03/05/2026")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_MonthlyReport(t *testing.T) {
	repo := &fakeRepo{rows: []domain.StockReportRow{
		{SparepartID: 1, Name: "Busi", StockIn: 20, StockOut: 15, Remaining: 9, IsLow: true},
		{SparepartID: 2, Name: "Filter", StockIn: 5, StockOut: 1, Remaining: 30},
	}}
	s := newService(repo)

	report, err := s.MonthlyReport(context.Background(), "2026-12")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), repo.from)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), repo.to)
	assert.Equal(t, "2026-12", report.Month)
	assert.Equal(t, 25, report.TotalIn)
	assert.Equal(t, 16, report.TotalOut)
	assert.Equal(t, 1, report.LowStockCount)

	_, err = s.MonthlyReport(context.Background(), "Desember")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ExportMonthlyReport(t *testing.T) {
	repo := &fakeRepo{rows: []domain.StockReportRow{{SparepartID: 1, Name: "Busi", Remaining: 9, IsLow: true}}}

	data, err := newService(repo).ExportMonthlyReport(context.Background(), "2026-05")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
