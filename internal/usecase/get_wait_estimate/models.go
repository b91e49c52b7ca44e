package get_wait_estimate

// Request модель запроса оценки времени ожидания.
// CurrentVisitors позволяет передать живое число людей в очереди (например,
// с датчиков); без него очередь оценивается по счётчику занятости слота.
type Request struct {
	TempleID        int64 // ID храма
	SlotID          int64 // ID слота посещения
	CurrentVisitors *int  // Текущее число посетителей в очереди (опционально)
	Lanes           *int  // Число полос обслуживания (опционально)
}

// Estimate оценка времени ожидания
type Estimate struct {
	Minutes int    `json:"minutes"`
	Level   string `json:"level"` // "low" / "medium" / "high"
}

// Response модель ответа с оценкой.
// Estimate равен nil, когда у храма не настроена ёмкость слота и оценка
// невозможна - это не ошибка.
type Response struct {
	TempleID        int64     `json:"templeId"`
	SlotID          int64     `json:"slotId"`
	CurrentVisitors int       `json:"currentVisitors"`
	Estimate        *Estimate `json:"estimate"`
}
