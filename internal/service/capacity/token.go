package capacity

import "time"

// ReservationToken квитанция аллокатора: связывает слот и число
// зарезервированных мест. Требуется для последующего освобождения
// этой ёмкости через Release либо погашения через Commit.
type ReservationToken struct {
	ID         string
	SlotID     int64
	Units      int
	NewCount   int // значение счётчика сразу после резервирования
	ReservedAt time.Time
}
