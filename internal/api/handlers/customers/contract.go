package customers

import (
	"context"

	"github.com/m04kA/SMC-WorkshopService/internal/service/customers/models"
)

type CustomerService interface {
	List(ctx context.Context, req *models.ListCustomersRequest) (*models.CustomerListResponse, error)
	ReminderLink(ctx context.Context, plateNumber string) (*models.ReminderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
