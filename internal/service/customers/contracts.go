package customers

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// CustomerRepository источник клиентов, агрегированных из бронирований
type CustomerRepository interface {
	ListCustomers(ctx context.Context, filter domain.CustomersFilter) ([]*domain.Customer, error)
}

// LinkBuilder строит ссылки wa.me
type LinkBuilder interface {
	Link(phone, text string) (string, error)
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider системное время в часовом поясе мастерской
type RealTimeProvider struct {
	Location *time.Location
}

func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}
