package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/internal/service/catalog/models"
)

func validateServiceRequest(req *models.ServiceRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", ErrInvalidInput)
	}

	for i, opt := range req.Options {
		if strings.TrimSpace(opt.Name) == "" {
			return fmt.Errorf("%w: options[%d].name is required", ErrInvalidInput, i)
		}
		if opt.Price < 0 {
			return fmt.Errorf("%w: options[%d].price must not be negative", ErrInvalidInput, i)
		}
	}

	return nil
}
