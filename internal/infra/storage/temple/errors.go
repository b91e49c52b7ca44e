package temple

import "errors"

var (
	// ErrTempleNotFound возвращается, когда храм не найден
	ErrTempleNotFound = errors.New("temple.repository: temple not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("temple.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("temple.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("temple.repository: failed to scan row")
)
