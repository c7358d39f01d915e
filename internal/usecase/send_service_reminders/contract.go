package send_service_reminders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// CustomerRepository источник клиентов, агрегированных из бронирований
type CustomerRepository interface {
	ListCustomers(ctx context.Context, filter domain.CustomersFilter) ([]*domain.Customer, error)
}

// Sender отправка сообщения в WhatsApp
type Sender interface {
	SendWhatsApp(ctx context.Context, phone, body string) (string, error)
}

// Metrics счетчики напоминаний
type Metrics interface {
	IncReminder(status string)
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
