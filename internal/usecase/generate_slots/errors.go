package generate_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrAccessDenied возвращается, когда генерацию запросил не оператор
	ErrAccessDenied = errors.New("generate_slots: access denied")

	// ErrInvalidDate возвращается при генерации слотов на прошедшую дату
	ErrInvalidDate = errors.New("generate_slots: date is in the past")

	// ErrTempleNotFound возвращается, когда храм не найден
	ErrTempleNotFound = errors.New("generate_slots: temple not found")

	// ErrTempleInactive возвращается, когда храм закрыт для посещений
	ErrTempleInactive = errors.New("generate_slots: temple is not active")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
