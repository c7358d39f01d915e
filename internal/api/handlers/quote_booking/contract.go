package quote_booking

import (
	"context"

	quoteBooking "github.com/m04kA/SMC-WorkshopService/internal/usecase/quote_booking"
)

type UseCase interface {
	Execute(ctx context.Context, req *quoteBooking.Request) (*quoteBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
