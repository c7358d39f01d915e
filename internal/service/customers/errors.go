package customers

import "errors"

var (
	// ErrCustomerNotFound возвращается, если по номеру нет ни одного бронирования
	ErrCustomerNotFound = errors.New("customers: customer not found")

	// ErrInvalidPhone возвращается, если по телефону клиента нельзя построить ссылку
	ErrInvalidPhone = errors.New("customers: invalid customer phone")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("customers: internal error")
)
