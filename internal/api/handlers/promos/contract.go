package promos

import (
	"context"

	"github.com/m04kA/SMC-WorkshopService/internal/service/promos/models"
)

type PromoService interface {
	List(ctx context.Context) (*models.PromoListResponse, error)
	GetByID(ctx context.Context, id int64) (*models.PromoResponse, error)
	Create(ctx context.Context, req *models.PromoRequest) (*models.PromoResponse, error)
	Update(ctx context.Context, id int64, req *models.PromoRequest) (*models.PromoResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
