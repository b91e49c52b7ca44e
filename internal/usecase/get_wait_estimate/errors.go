package get_wait_estimate

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_wait_estimate: invalid input data")

	// ErrTempleNotFound возвращается, когда храм не найден
	ErrTempleNotFound = errors.New("get_wait_estimate: temple not found")

	// ErrSlotNotFound возвращается, когда слот не найден или принадлежит другому храму
	ErrSlotNotFound = errors.New("get_wait_estimate: slot not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_wait_estimate: internal error")
)
