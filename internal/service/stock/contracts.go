package stock

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// MovementRepository интерфейс журнала движений склада
type MovementRepository interface {
	List(ctx context.Context, filter domain.MovementsFilter) ([]*domain.StockMovement, error)
	MonthlyReport(ctx context.Context, from, to time.Time) ([]domain.StockReportRow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
