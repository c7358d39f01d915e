package stock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/internal/infra/export"
	"github.com/m04kA/SMC-WorkshopService/internal/service/stock/models"
)

// Service сервис журнала склада и отчетов
type Service struct {
	movementRepo MovementRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса склада
func NewService(movementRepo MovementRepository, logger Logger) *Service {
	return &Service{
		movementRepo: movementRepo,
		logger:       logger,
	}
}

// ListMovements возвращает журнал движений с фильтрами
func (s *Service) ListMovements(ctx context.Context, req *models.ListMovementsRequest) (*models.MovementListResponse, error) {
	filter := domain.MovementsFilter{Search: strings.TrimSpace(req.Search)}

	if req.Direction != nil {
		direction := domain.MovementDirection(*req.Direction)
		if !direction.IsValid() {
			return nil, fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, *req.Direction)
		}
		filter.Direction = &direction
	}
	if req.Date != nil {
		date, err := time.Parse(domain.DateFormat, *req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
		}
		filter.Date = &date
	}

	movements, err := s.movementRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListMovements: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListMovements - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainMovementList(movements), nil
}

// MonthlyReport приход, расход и текущий остаток по каждой запчасти за месяц ("2026-05")
func (s *Service) MonthlyReport(ctx context.Context, month string) (*models.ReportResponse, error) {
	from, err := time.Parse(domain.MonthFormat, month)
	if err != nil {
		return nil, fmt.Errorf("%w: month must be YYYY-MM", ErrInvalidInput)
	}

	rows, err := s.movementRepo.MonthlyReport(ctx, from, from.AddDate(0, 1, 0))
	if err != nil {
		s.logger.Error("MonthlyReport: repository error for month=%s: %v", month, err)
		return nil, fmt.Errorf("%w: MonthlyReport - repository error: %v", ErrInternal, err)
	}

	report := models.FromDomainReport(from, rows)
	s.logger.Info("MonthlyReport: month=%s rows=%d in=%d out=%d", month, len(report.Rows), report.TotalIn, report.TotalOut)
	return report, nil
}

// ExportMonthlyReport выгружает месячный отчет в xlsx
func (s *Service) ExportMonthlyReport(ctx context.Context, month string) ([]byte, error) {
	report, err := s.MonthlyReport(ctx, month)
	if err != nil {
		return nil, err
	}

	table := export.Table{
		Sheet:   "Laporan " + report.Month,
		Headers: []string{"Kode", "Nama", "Masuk", "Keluar", "Sisa Stok", "Stok Menipis"},
		Rows:    make([][]interface{}, 0, len(report.Rows)+1),
	}
	for _, r := range report.Rows {
		low := "Tidak"
		if r.IsLow {
			low = "Ya"
		}
		table.Rows = append(table.Rows, []interface{}{r.Code, r.Name, r.StockIn, r.StockOut, r.Remaining, low})
	}
	table.Rows = append(table.Rows, []interface{}{"", "Total", report.TotalIn, report.TotalOut, "", report.LowStockCount})

	data, err := export.XLSX(table)
	if err != nil {
		s.logger.Error("ExportMonthlyReport: failed to build workbook: %v", err)
		return nil, fmt.Errorf("%w: ExportMonthlyReport - %v", ErrInternal, err)
	}
	return data, nil
}
