package spareparts

import "errors"

var (
	// ErrSparepartNotFound возвращается, когда запчасть не найдена
	ErrSparepartNotFound = errors.New("spareparts: sparepart not found")

	// ErrCodeTaken возвращается при дублировании кода запчасти
	ErrCodeTaken = errors.New("spareparts: code already exists")

	// ErrSparepartInUse возвращается при удалении запчасти с историей движений
	ErrSparepartInUse = errors.New("spareparts: sparepart has stock movements")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("spareparts: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("spareparts: internal error")
)
