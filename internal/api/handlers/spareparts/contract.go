package spareparts

import (
	"context"

	"github.com/m04kA/SMC-WorkshopService/internal/service/spareparts/models"
)

type SparepartService interface {
	List(ctx context.Context, req *models.ListSparepartsRequest) (*models.SparepartListResponse, error)
	GetByID(ctx context.Context, id int64) (*models.SparepartResponse, error)
	Create(ctx context.Context, req *models.SparepartRequest) (*models.SparepartResponse, error)
	Update(ctx context.Context, id int64, req *models.SparepartRequest) (*models.SparepartResponse, error)
	Delete(ctx context.Context, id int64) error
	LowStock(ctx context.Context) ([]models.SparepartResponse, error)
	Export(ctx context.Context, search string, status *string) ([]byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
