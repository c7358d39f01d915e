package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда одна из выбранных услуг отсутствует в каталоге
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrPromoRejected возвращается, когда промокод не может быть применен
	ErrPromoRejected = errors.New("create_booking: promo code rejected")

	// ErrInvalidDate возвращается, когда дата бронирования раньше завтрашнего дня
	ErrInvalidDate = errors.New("create_booking: booking date must be tomorrow or later")

	// ErrNoOptionsSelected возвращается, когда не выбрано ни одной опции и это не "только проверка"
	ErrNoOptionsSelected = errors.New("create_booking: at least one service option is required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
