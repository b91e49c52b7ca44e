package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInvalidDate возвращается при запросе слотов на прошедшую дату
	ErrInvalidDate = errors.New("get_available_slots: date is in the past")

	// ErrTempleNotFound возвращается, когда храм не найден
	ErrTempleNotFound = errors.New("get_available_slots: temple not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
