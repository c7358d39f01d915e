package domain

import (
	"strings"
	"time"
)

// DiscountType describes how a promo value is applied
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// IsValid returns true for known discount types
func (t DiscountType) IsValid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

// Promo is a discount code with a validity window and optional service scoping
type Promo struct {
	ID                 int64
	Code               string
	Name               string
	Description        string
	DiscountType       DiscountType
	Value              float64
	ValidFrom          *time.Time // nil = valid since creation
	ValidUntil         time.Time
	ApplicableServices []int64 // empty = all services
	Image              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NormalizePromoCode trims and uppercases a user-entered code
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsExpired returns true if today is after the last valid day
func (p *Promo) IsExpired(today time.Time) bool {
	return calendarDay(today).After(calendarDay(p.ValidUntil))
}

// IsNotStarted returns true if the promo has a start date in the future
func (p *Promo) IsNotStarted(today time.Time) bool {
	return p.ValidFrom != nil && calendarDay(today).Before(calendarDay(*p.ValidFrom))
}

// IsScoped returns true if the promo is limited to specific services
func (p *Promo) IsScoped() bool {
	return len(p.ApplicableServices) > 0
}

// AppliesToAny returns true if the promo is unscoped or covers at least one of the services
func (p *Promo) AppliesToAny(serviceIDs []int64) bool {
	if !p.IsScoped() {
		return true
	}
	for _, applicable := range p.ApplicableServices {
		for _, id := range serviceIDs {
			if applicable == id {
				return true
			}
		}
	}
	return false
}

// DateOnly drops the time of day keeping the location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// calendarDay compares dates by their calendar day regardless of location
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
