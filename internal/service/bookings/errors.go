package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	// из-за своего текущего статуса
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCancellationWindowClosed возвращается, когда до начала слота
	// осталось меньше допустимого окна отмены
	ErrCancellationWindowClosed = errors.New("cancellation window is closed")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrConflictRetryExhausted возвращается, когда конкурентные конфликты
	// не разрешились за отведённое число попыток
	ErrConflictRetryExhausted = errors.New("conflict retries exhausted")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
