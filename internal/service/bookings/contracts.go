package bookings

import (
	"context"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Count(ctx context.Context, filter domain.BookingsFilter) (int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	AssignMechanic(ctx context.Context, id int64, mechanicID int64) error
	UpdateMechanicNotes(ctx context.Context, id int64, notes string) error
	Stats(ctx context.Context) (*domain.BookingStats, error)
}

// UserRepository интерфейс репозитория сотрудников (проверка механика)
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
