package whatsapp

import "errors"

var (
	// ErrInvalidPhone возвращается, когда в номере нет цифр
	ErrInvalidPhone = errors.New("whatsapp: invalid phone number")
)
