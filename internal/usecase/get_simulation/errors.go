package get_simulation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_simulation: invalid input data")

	// ErrTempleNotFound возвращается, когда храм не найден
	ErrTempleNotFound = errors.New("get_simulation: temple not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_simulation: internal error")
)
