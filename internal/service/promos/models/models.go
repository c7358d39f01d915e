package models

import (
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// Статус промокода относительно текущей даты
const (
	StatusActive   = "active"
	StatusUpcoming = "upcoming"
	StatusExpired  = "expired"
)

// PromoRequest запрос на создание или замену промокода
type PromoRequest struct {
	Code               string  `json:"code"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	DiscountType       string  `json:"discountType"`
	Value              float64 `json:"value"`
	ValidFrom          *string `json:"validFrom,omitempty"` // "2026-05-01"
	ValidUntil         string  `json:"validUntil"`          // "2026-05-31"
	ApplicableServices []int64 `json:"applicableServices"`
	Image              string  `json:"image"`
}

// PromoResponse промокод
type PromoResponse struct {
	ID                 int64     `json:"id"`
	Code               string    `json:"code"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	DiscountType       string    `json:"discountType"`
	Value              float64   `json:"value"`
	ValidFrom          *string   `json:"validFrom,omitempty"`
	ValidUntil         string    `json:"validUntil"`
	ApplicableServices []int64   `json:"applicableServices"`
	Image              string    `json:"image"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// PromoListResponse ответ со списком промокодов
type PromoListResponse struct {
	Promos []PromoResponse `json:"promos"`
}

// FromDomainPromo конвертирует domain модель в DTO
func FromDomainPromo(p *domain.Promo, today time.Time) *PromoResponse {
	if p == nil {
		return nil
	}

	resp := &PromoResponse{
		ID:                 p.ID,
		Code:               p.Code,
		Name:               p.Name,
		Description:        p.Description,
		DiscountType:       string(p.DiscountType),
		Value:              p.Value,
		ValidUntil:         p.ValidUntil.Format(domain.DateFormat),
		ApplicableServices: p.ApplicableServices,
		Image:              p.Image,
		Status:             StatusActive,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
	if resp.ApplicableServices == nil {
		resp.ApplicableServices = []int64{}
	}
	if p.ValidFrom != nil {
		from := p.ValidFrom.Format(domain.DateFormat)
		resp.ValidFrom = &from
	}

	switch {
	case p.IsExpired(today):
		resp.Status = StatusExpired
	case p.IsNotStarted(today):
		resp.Status = StatusUpcoming
	}

	return resp
}

// FromDomainPromoList конвертирует список domain моделей в DTO
func FromDomainPromoList(promos []domain.Promo, today time.Time) *PromoListResponse {
	resp := &PromoListResponse{Promos: make([]PromoResponse, 0, len(promos))}
	for i := range promos {
		resp.Promos = append(resp.Promos, *FromDomainPromo(&promos[i], today))
	}
	return resp
}
