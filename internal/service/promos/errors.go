package promos

import "errors"

var (
	// ErrPromoNotFound возвращается, когда промокод не найден
	ErrPromoNotFound = errors.New("promos: promo not found")

	// ErrPromoCodeTaken возвращается при дублировании кода
	ErrPromoCodeTaken = errors.New("promos: promo code already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("promos: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("promos: internal error")
)
