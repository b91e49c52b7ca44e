package get_available_slots

import "time"

// Request модель запроса доступных слотов
type Request struct {
	TempleID int64     // ID храма
	Date     time.Time // Дата посещения
}

// Slot доступный слот посещения
type Slot struct {
	ID                int64  `json:"id"`
	StartTime         string `json:"startTime"` // "10:00"
	EndTime           string `json:"endTime"`   // "10:30"
	MaxCapacity       int    `json:"maxCapacity"`
	CurrentBookings   int    `json:"currentBookings"`
	RemainingCapacity int    `json:"remainingCapacity"`
	IsAvailable       bool   `json:"isAvailable"`
}

// Response модель ответа со слотами на дату
type Response struct {
	TempleID int64     `json:"templeId"`
	Date     time.Time `json:"date"`
	Slots    []Slot    `json:"slots"`
}
