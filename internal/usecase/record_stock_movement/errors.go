package record_stock_movement

import "errors"

var (
	// ErrSparepartNotFound возвращается, когда запчасть не найдена
	ErrSparepartNotFound = errors.New("record_stock_movement: sparepart not found")

	// ErrInsufficientStock возвращается, когда расход больше текущего остатка
	ErrInsufficientStock = errors.New("record_stock_movement: insufficient stock")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("record_stock_movement: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("record_stock_movement: internal error")
)
