package capacity

import "errors"

var (
	// ErrInvalidUnits возвращается, когда запрошенное число мест вне [1, 10]
	ErrInvalidUnits = errors.New("capacity: requested units out of range")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("capacity: slot not found")

	// ErrSlotUnavailable возвращается при резервировании в закрытом слоте
	ErrSlotUnavailable = errors.New("capacity: slot is not available")

	// ErrCapacityExceeded возвращается, когда в слоте не хватает свободных мест
	ErrCapacityExceeded = errors.New("capacity: capacity exceeded")

	// ErrTokenNotFound возвращается при освобождении по неизвестному
	// или уже погашенному токену
	ErrTokenNotFound = errors.New("capacity: reservation token not found")

	// ErrSerializationConflict возвращается из ReleaseUnits при конфликте
	// сериализации: повтор выполняет вызывающий, перезапуская транзакцию
	ErrSerializationConflict = errors.New("capacity: serialization conflict")

	// ErrConflictRetryExhausted возвращается, когда конфликты сериализации
	// не разрешились за отведённое число попыток
	ErrConflictRetryExhausted = errors.New("capacity: conflict retries exhausted")

	// ErrInternal возвращается при внутренних ошибках аллокатора
	ErrInternal = errors.New("capacity: internal error")
)
