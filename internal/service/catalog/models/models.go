package models

import (
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// Request модели

// OptionRequest опция услуги (запчасть или работа)
type OptionRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ServiceRequest запрос на создание или замену услуги
type ServiceRequest struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	DurationMinutes int             `json:"durationMinutes"`
	Category        string          `json:"category"`
	Options         []OptionRequest `json:"options"`
}

// ToDomainService конвертирует request в domain модель
func (r *ServiceRequest) ToDomainService() *domain.Service {
	service := &domain.Service{
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Category:        r.Category,
		Options:         make([]domain.ServiceOption, 0, len(r.Options)),
	}
	for _, opt := range r.Options {
		service.Options = append(service.Options, domain.ServiceOption{Name: opt.Name, Price: opt.Price})
	}
	return service
}

// Response модели

// OptionResponse опция услуги с ценой
type OptionResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	DurationMinutes int              `json:"durationMinutes"`
	Category        string           `json:"category"`
	Options         []OptionResponse `json:"options"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	resp := &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Category:        s.Category,
		Options:         make([]OptionResponse, 0, len(s.Options)),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	for _, opt := range s.Options {
		resp.Options = append(resp.Options, OptionResponse{ID: opt.ID, Name: opt.Name, Price: opt.Price})
	}
	return resp
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for i := range services {
		resp.Services = append(resp.Services, *FromDomainService(&services[i]))
	}
	return resp
}
