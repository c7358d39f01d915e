package employees

import (
	"context"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// UserRepository интерфейс репозитория сотрудников
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, filter domain.UsersFilter) ([]*domain.User, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// PasswordHasher хеширует пароли сотрудников
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
