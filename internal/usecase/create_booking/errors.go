package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrTempleNotFound возвращается, когда храм не найден
	ErrTempleNotFound = errors.New("create_booking: temple not found")

	// ErrTempleInactive возвращается, когда храм закрыт для посещений
	ErrTempleInactive = errors.New("create_booking: temple is not active")

	// ErrSlotNotFound возвращается, когда слот не найден или принадлежит другому храму
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotUnavailable возвращается, когда слот закрыт для бронирования
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrSlotInPast возвращается при попытке забронировать уже начавшийся слот
	ErrSlotInPast = errors.New("create_booking: slot is in the past")

	// ErrCapacityExceeded возвращается, когда в слоте не хватает свободных мест
	ErrCapacityExceeded = errors.New("create_booking: slot capacity exceeded")

	// ErrConflictRetryExhausted возвращается при исчерпании попыток на конфликтах
	ErrConflictRetryExhausted = errors.New("create_booking: conflict retries exhausted")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
