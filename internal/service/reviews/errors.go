package reviews

import "errors"

var (
	// ErrInvalidInput невалидные данные отзыва
	ErrInvalidInput = errors.New("reviews: invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("reviews: internal error")
)
