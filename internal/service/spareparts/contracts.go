package spareparts

import (
	"context"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// SparepartRepository интерфейс репозитория запчастей
type SparepartRepository interface {
	List(ctx context.Context, filter domain.SparepartsFilter) ([]*domain.Sparepart, error)
	Count(ctx context.Context, filter domain.SparepartsFilter) (int, error)
	ListLowStock(ctx context.Context) ([]*domain.Sparepart, error)
	GetByID(ctx context.Context, id int64) (*domain.Sparepart, error)
	Create(ctx context.Context, part *domain.Sparepart) (*domain.Sparepart, error)
	Update(ctx context.Context, part *domain.Sparepart) (*domain.Sparepart, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
