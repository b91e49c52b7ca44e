package models

import (
	"errors"
	"time"

	"github.com/m04kA/TCM-VisitService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidRole возвращается при некорректной роли актора
	ErrInvalidRole = errors.New("invalid actor role")
)

// Request модели

// UpdateStatusRequest запрос на изменение статуса бронирования
type UpdateStatusRequest struct {
	UserID             int64   `json:"userId"`
	Role               string  `json:"role"`
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64            `json:"id"`
	BookingID     string           `json:"bookingId"`
	UserID        int64            `json:"userId"`
	TempleID      int64            `json:"templeId"`
	SlotID        int64            `json:"slotId"`
	VisitorsCount int              `json:"visitorsCount"`
	Visitors      []domain.Visitor `json:"visitors"`
	Status        string           `json:"status"`
	SlotStart     time.Time        `json:"slotStart"`
	QRPayload     string           `json:"qrPayload,omitempty"`

	ContactEmail   *string `json:"contactEmail,omitempty"`
	ContactPhone   *string `json:"contactPhone,omitempty"`
	SpecialRequest *string `json:"specialRequest,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled,
		domain.StatusCompleted, domain.StatusNoShow:
		return domain.BookingStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}

// ToDomainActorRole конвертирует строку в domain.ActorRole
func ToDomainActorRole(role string) (domain.ActorRole, error) {
	switch domain.ActorRole(role) {
	case domain.RolePilgrim, domain.RoleOperator:
		return domain.ActorRole(role), nil
	default:
		return "", ErrInvalidRole
	}
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:             b.ID,
		BookingID:      b.BookingID,
		UserID:         b.UserID,
		TempleID:       b.TempleID,
		SlotID:         b.SlotID,
		VisitorsCount:  b.VisitorsCount,
		Visitors:       b.Visitors,
		Status:         string(b.Status),
		SlotStart:      b.SlotStart,
		QRPayload:      b.QRPayload,
		ContactEmail:   b.ContactEmail,
		ContactPhone:   b.ContactPhone,
		SpecialRequest: b.SpecialRequest,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}

	resp.CancellationReason = b.CancellationReason
	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}
