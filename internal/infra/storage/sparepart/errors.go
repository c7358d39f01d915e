package sparepart

import "errors"

var (
	// ErrSparepartNotFound возвращается, когда запчасть не найдена
	ErrSparepartNotFound = errors.New("sparepart.repository: sparepart not found")

	// ErrSparepartAlreadyExists возвращается при дублировании кода запчасти
	ErrSparepartAlreadyExists = errors.New("sparepart.repository: sparepart code already exists")

	// ErrSparepartInUse возвращается при удалении запчасти с историей движений
	ErrSparepartInUse = errors.New("sparepart.repository: sparepart has stock movements")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("sparepart.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("sparepart.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("sparepart.repository: failed to scan row")
)
