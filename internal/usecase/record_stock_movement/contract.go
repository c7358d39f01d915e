package record_stock_movement

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// SparepartRepository интерфейс репозитория запчастей
// GetByID внутри транзакции блокирует строку (FOR UPDATE)
type SparepartRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Sparepart, error)
	AdjustStock(ctx context.Context, id int64, delta int) (int, error)
}

// MovementRepository интерфейс журнала движений
type MovementRepository interface {
	Create(ctx context.Context, m *domain.StockMovement) (*domain.StockMovement, error)
}

// Metrics счетчики движений склада
type Metrics interface {
	IncStockMovement(direction string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
