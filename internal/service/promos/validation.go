package promos

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/internal/service/promos/models"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9_-]+$`)

// toDomainPromo валидирует запрос и собирает domain модель
func toDomainPromo(req *models.PromoRequest) (*domain.Promo, error) {
	code := domain.NormalizePromoCode(req.Code)
	if n := utf8.RuneCountInString(code); n < domain.MinPromoCodeLength || n > domain.MaxPromoCodeLength {
		return nil, fmt.Errorf("%w: code must be %d..%d characters", ErrInvalidInput, domain.MinPromoCodeLength, domain.MaxPromoCodeLength)
	}
	if !codePattern.MatchString(code) {
		return nil, fmt.Errorf("%w: code may contain only A-Z, 0-9, '_' and '-'", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	discountType := domain.DiscountType(req.DiscountType)
	if !discountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown discountType %q", ErrInvalidInput, req.DiscountType)
	}
	if req.Value <= 0 {
		return nil, fmt.Errorf("%w: value must be positive", ErrInvalidInput)
	}
	if discountType == domain.DiscountPercentage && req.Value > domain.MaxPercentageDiscount {
		return nil, fmt.Errorf("%w: percentage must not exceed %d", ErrInvalidInput, domain.MaxPercentageDiscount)
	}

	validUntil, err := time.Parse(domain.DateFormat, req.ValidUntil)
	if err != nil {
		return nil, fmt.Errorf("%w: validUntil must be YYYY-MM-DD", ErrInvalidInput)
	}

	var validFrom *time.Time
	if req.ValidFrom != nil && *req.ValidFrom != "" {
		from, err := time.Parse(domain.DateFormat, *req.ValidFrom)
		if err != nil {
			return nil, fmt.Errorf("%w: validFrom must be YYYY-MM-DD", ErrInvalidInput)
		}
		if validUntil.Before(from) {
			return nil, fmt.Errorf("%w: validUntil is before validFrom", ErrInvalidInput)
		}
		validFrom = &from
	}

	services := make([]int64, 0, len(req.ApplicableServices))
	seen := make(map[int64]struct{}, len(req.ApplicableServices))
	for _, id := range req.ApplicableServices {
		if id <= 0 {
			return nil, fmt.Errorf("%w: applicableServices must contain positive ids", ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		services = append(services, id)
	}

	return &domain.Promo{
		Code:               code,
		Name:               name,
		Description:        strings.TrimSpace(req.Description),
		DiscountType:       discountType,
		Value:              req.Value,
		ValidFrom:          validFrom,
		ValidUntil:         validUntil,
		ApplicableServices: services,
		Image:              strings.TrimSpace(req.Image),
	}, nil
}
