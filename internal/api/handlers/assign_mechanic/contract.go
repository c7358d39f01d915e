package assign_mechanic

import (
	"context"

	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings/models"
)

type BookingService interface {
	AssignMechanic(ctx context.Context, id int64, req *models.AssignMechanicRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
