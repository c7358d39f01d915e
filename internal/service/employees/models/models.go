package models

import (
	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	authModels "github.com/m04kA/SMC-WorkshopService/internal/service/auth/models"
)

// CreateEmployeeRequest запрос на создание сотрудника
type CreateEmployeeRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// UpdateEmployeeRequest запрос на обновление сотрудника. Пустой пароль не меняет текущий
type UpdateEmployeeRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
}

// ListEmployeesRequest фильтр списка
type ListEmployeesRequest struct {
	Search string
	Role   *string
}

// EmployeeListResponse ответ со списком сотрудников
type EmployeeListResponse struct {
	Employees []authModels.UserResponse `json:"employees"`
	Total     int                       `json:"total"`
}

// FromDomainUserList конвертирует список domain моделей в DTO
func FromDomainUserList(users []*domain.User) *EmployeeListResponse {
	resp := &EmployeeListResponse{
		Employees: make([]authModels.UserResponse, 0, len(users)),
		Total:     len(users),
	}
	for _, u := range users {
		resp.Employees = append(resp.Employees, *authModels.FromDomainUser(u))
	}
	return resp
}
