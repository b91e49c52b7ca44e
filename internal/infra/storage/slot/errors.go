package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotUnavailable возвращается при попытке резервирования в закрытом слоте
	ErrSlotUnavailable = errors.New("slot.repository: slot is not available")

	// ErrCapacityExceeded возвращается, когда инкремент превысил бы max_capacity
	ErrCapacityExceeded = errors.New("slot.repository: capacity exceeded")

	// ErrCapacityUnderflow возвращается, когда декремент увёл бы счётчик ниже нуля
	ErrCapacityUnderflow = errors.New("slot.repository: capacity underflow")

	// ErrSerialization возвращается при конфликте сериализации транзакций (retry-able)
	ErrSerialization = errors.New("slot.repository: serialization conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
