package employees

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

func validateProfile(username, name, role string) (domain.Role, error) {
	if strings.TrimSpace(username) == "" {
		return "", fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if strings.ContainsAny(username, " \t") {
		return "", fmt.Errorf("%w: username must not contain spaces", ErrInvalidInput)
	}
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return "", fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	r := domain.Role(role)
	if !r.IsValid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	return r, nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < domain.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, domain.MinPasswordLength)
	}
	return nil
}
