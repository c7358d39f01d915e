package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/internal/pricing"
	"github.com/m04kA/SMC-WorkshopService/internal/usecase/quote_booking"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// DraftBuilder собирает черновик расчета по выбору клиента
type DraftBuilder interface {
	BuildDraft(ctx context.Context, req *quote_booking.Request) (*pricing.Draft, error)
}

// LinkBuilder строит ссылки wa.me
type LinkBuilder interface {
	Link(phone, text string) (string, error)
}

// Metrics счетчики созданных бронирований
type Metrics interface {
	IncBookingCreated(checkOnly, withPromo bool)
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
