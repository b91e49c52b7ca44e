package create_booking

import (
	"time"

	"github.com/m04kA/TCM-VisitService/internal/domain"
	createBooking "github.com/m04kA/TCM-VisitService/internal/usecase/create_booking"
)

// VisitorPayload один посетитель в составе группы
type VisitorPayload struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	TempleID       int64            `json:"templeId"`
	SlotID         int64            `json:"slotId"`
	VisitorsCount  int              `json:"visitorsCount"`
	Visitors       []VisitorPayload `json:"visitors"`
	ContactEmail   *string          `json:"contactEmail,omitempty"`
	ContactPhone   *string          `json:"contactPhone,omitempty"`
	SpecialRequest *string          `json:"specialRequest,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64            `json:"id"`
	BookingID     string           `json:"bookingId"`
	UserID        int64            `json:"userId"`
	TempleID      int64            `json:"templeId"`
	SlotID        int64            `json:"slotId"`
	VisitorsCount int              `json:"visitorsCount"`
	Visitors      []VisitorPayload `json:"visitors"`
	Status        string           `json:"status"`
	SlotStart     string           `json:"slotStart"` // ISO 8601
	QRPayload     string           `json:"qrPayload"`
	CreatedAt     string           `json:"createdAt"` // ISO 8601
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	visitors := make([]domain.Visitor, 0, len(r.Visitors))
	for _, v := range r.Visitors {
		visitors = append(visitors, domain.Visitor{
			Name:   v.Name,
			Age:    v.Age,
			Gender: v.Gender,
		})
	}

	return &createBooking.Request{
		UserID:         userID,
		TempleID:       r.TempleID,
		SlotID:         r.SlotID,
		VisitorsCount:  r.VisitorsCount,
		Visitors:       visitors,
		ContactEmail:   r.ContactEmail,
		ContactPhone:   r.ContactPhone,
		SpecialRequest: r.SpecialRequest,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	visitors := make([]VisitorPayload, 0, len(resp.Visitors))
	for _, v := range resp.Visitors {
		visitors = append(visitors, VisitorPayload{
			Name:   v.Name,
			Age:    v.Age,
			Gender: v.Gender,
		})
	}

	return &BookingResponse{
		ID:            resp.ID,
		BookingID:     resp.BookingID,
		UserID:        resp.UserID,
		TempleID:      resp.TempleID,
		SlotID:        resp.SlotID,
		VisitorsCount: resp.VisitorsCount,
		Visitors:      visitors,
		Status:        resp.Status,
		SlotStart:     resp.SlotStart.Format(time.RFC3339),
		QRPayload:     resp.QRPayload,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
