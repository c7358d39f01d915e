package models

import (
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// SparepartRequest запрос на создание или обновление запчасти
type SparepartRequest struct {
	Name  string  `json:"name"`
	Code  string  `json:"code"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// ListSparepartsRequest фильтр и страница списка
type ListSparepartsRequest struct {
	Search   string
	Status   *string
	Page     int
	PageSize int
}

// SparepartResponse запчасть с полосой остатка
type SparepartResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	StockStatus string    `json:"stockStatus"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SparepartListResponse страница списка запчастей
type SparepartListResponse struct {
	Spareparts []SparepartResponse `json:"spareparts"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
	TotalPages int                 `json:"totalPages"`
}

// FromDomainSparepart конвертирует domain модель в DTO
func FromDomainSparepart(p *domain.Sparepart) *SparepartResponse {
	if p == nil {
		return nil
	}
	return &SparepartResponse{
		ID:          p.ID,
		Name:        p.Name,
		Code:        p.Code,
		Price:       p.Price,
		Stock:       p.Stock,
		StockStatus: string(p.StockStatus()),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// FromDomainSparepartList конвертирует список domain моделей в DTO
func FromDomainSparepartList(parts []*domain.Sparepart) []SparepartResponse {
	out := make([]SparepartResponse, 0, len(parts))
	for _, p := range parts {
		out = append(out, *FromDomainSparepart(p))
	}
	return out
}

// TotalPages количество страниц для total записей
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total == 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
