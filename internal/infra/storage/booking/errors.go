package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateBookingID возвращается при коллизии публичного идентификатора
	ErrDuplicateBookingID = errors.New("booking.repository: duplicate booking id")

	// ErrStatusConflict возвращается, когда условный переход статуса не прошёл
	// (текущий статус строки не совпал с ожидаемым)
	ErrStatusConflict = errors.New("booking.repository: status transition conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
