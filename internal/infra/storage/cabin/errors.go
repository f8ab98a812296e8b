package cabin

import "errors"

var (
	// ErrCabinNotFound возвращается, когда кабина не найдена
	ErrCabinNotFound = errors.New("cabin.repository: cabin not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("cabin.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("cabin.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("cabin.repository: failed to scan row")

	// ErrInvalidRestrictedRange возвращается при некорректном формате диапазона в БД
	ErrInvalidRestrictedRange = errors.New("cabin.repository: invalid restricted range")
)
