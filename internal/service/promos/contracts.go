package promos

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// PromoRepository интерфейс репозитория промокодов
type PromoRepository interface {
	List(ctx context.Context) ([]domain.Promo, error)
	GetByID(ctx context.Context, id int64) (*domain.Promo, error)
	Create(ctx context.Context, p *domain.Promo) (*domain.Promo, error)
	Update(ctx context.Context, p *domain.Promo) (*domain.Promo, error)
	Delete(ctx context.Context, id int64) error
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время в часовом поясе мастерской
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}
