package capacity

import "context"

// SlotStore интерфейс хранилища счётчиков ёмкости слотов.
// AdjustCapacity обязан выполнять проверку границ и изменение счётчика
// атомарно относительно других конкурентных вызовов по тому же слоту
// (в PostgreSQL реализации - одним условным UPDATE).
type SlotStore interface {
	AdjustCapacity(ctx context.Context, slotID int64, delta int) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
