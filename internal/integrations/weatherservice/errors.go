package weatherservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("weatherservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("weatherservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что погодный сервис недоступен и симуляция должна
	// использовать нейтральные значения
	ErrServiceDegraded = errors.New("weatherservice unavailable: graceful degradation applied")
)
