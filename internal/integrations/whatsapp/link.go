package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

const baseURL = "https://wa.me/"

// LinkBuilder строит ссылки wa.me с предзаполненным текстом
type LinkBuilder struct {
	countryCode string
}

// NewLinkBuilder создает builder; countryCode подставляется вместо ведущего 0 (например "62")
func NewLinkBuilder(countryCode string) *LinkBuilder {
	return &LinkBuilder{countryCode: NormalizeDigits(countryCode)}
}

// NormalizeDigits оставляет в строке только цифры
func NormalizeDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Phone приводит номер к международному виду без "+": 0812... -> 62812...
func (l *LinkBuilder) Phone(phone string) (string, error) {
	digits := NormalizeDigits(phone)
	if digits == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}
	if strings.HasPrefix(digits, "0") {
		digits = l.countryCode + strings.TrimLeft(digits, "0")
	}
	return digits, nil
}

// Link возвращает https://wa.me/<digits>?text=<urlencoded>
func (l *LinkBuilder) Link(phone, text string) (string, error) {
	digits, err := l.Phone(phone)
	if err != nil {
		return "", err
	}
	if text == "" {
		return baseURL + digits, nil
	}
	return baseURL + digits + "?text=" + url.QueryEscape(text), nil
}
