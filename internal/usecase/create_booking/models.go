package create_booking

import (
	"time"

	"github.com/m04kA/TCM-VisitService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID         int64            // ID паломника
	TempleID       int64            // ID храма
	SlotID         int64            // ID слота посещения
	VisitorsCount  int              // Число посетителей (1-10)
	Visitors       []domain.Visitor // Состав группы, len == VisitorsCount
	ContactEmail   *string          // Контактный email (опционально)
	ContactPhone   *string          // Контактный телефон (опционально)
	SpecialRequest *string          // Особые пожелания (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64            // Внутренний ID бронирования
	BookingID     string           // Публичный идентификатор ("TCM...")
	UserID        int64            // ID паломника
	TempleID      int64            // ID храма
	SlotID        int64            // ID слота
	VisitorsCount int              // Число посетителей
	Visitors      []domain.Visitor // Состав группы
	Status        string           // Статус бронирования
	SlotStart     time.Time        // Дата и время начала слота
	QRPayload     string           // JSON payload для QR кода
	CreatedAt     time.Time        // Время создания
}

// qrPayload содержимое QR кода бронирования
type qrPayload struct {
	BookingID     string `json:"bookingId"`
	TempleID      int64  `json:"templeId"`
	SlotID        int64  `json:"slotId"`
	UserID        int64  `json:"userId"`
	VisitorsCount int    `json:"visitorsCount"`
}
