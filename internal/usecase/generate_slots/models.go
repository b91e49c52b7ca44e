package generate_slots

import "time"

// Request модель запроса генерации слотов на дату
type Request struct {
	UserID   int64     // ID оператора
	Role     string    // Роль актора, генерация доступна только оператору
	TempleID int64     // ID храма
	Date     time.Time // Дата, на которую генерируются слоты
}

// Response модель ответа с результатом генерации
type Response struct {
	TempleID int64     `json:"templeId"`
	Date     time.Time `json:"date"`
	Created  int       `json:"created"` // Число созданных слотов
	Total    int       `json:"total"`   // Общее число слотов рабочего дня
}
