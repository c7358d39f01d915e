package stock

import (
	"context"

	"github.com/m04kA/SMC-WorkshopService/internal/service/stock/models"
	recordStockMovement "github.com/m04kA/SMC-WorkshopService/internal/usecase/record_stock_movement"
)

type StockService interface {
	ListMovements(ctx context.Context, req *models.ListMovementsRequest) (*models.MovementListResponse, error)
	MonthlyReport(ctx context.Context, month string) (*models.ReportResponse, error)
	ExportMonthlyReport(ctx context.Context, month string) ([]byte, error)
}

type MovementRecorder interface {
	Execute(ctx context.Context, req *recordStockMovement.Request) (*recordStockMovement.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
