package employees

import (
	"context"

	authModels "github.com/m04kA/SMC-WorkshopService/internal/service/auth/models"
	"github.com/m04kA/SMC-WorkshopService/internal/service/employees/models"
)

type EmployeeService interface {
	List(ctx context.Context, req *models.ListEmployeesRequest) (*models.EmployeeListResponse, error)
	GetByID(ctx context.Context, id int64) (*authModels.UserResponse, error)
	Create(ctx context.Context, req *models.CreateEmployeeRequest) (*authModels.UserResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateEmployeeRequest) (*authModels.UserResponse, error)
	Delete(ctx context.Context, id, currentUserID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
