package quote_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда одна из выбранных услуг отсутствует в каталоге
	ErrServiceNotFound = errors.New("quote_booking: service not found")

	// ErrPromoRejected возвращается, когда промокод не может быть применен.
	// Причина доступна через errors.Is с ошибками пакета pricing
	ErrPromoRejected = errors.New("quote_booking: promo code rejected")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_booking: internal error")
)
