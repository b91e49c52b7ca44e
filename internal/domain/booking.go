package domain

import "time"

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// Visitor is one member of a booking party.
type Visitor struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender,omitempty"`
}

// Booking represents a reserved visitation party for one slot.
// Invariant: VisitorsCount == len(Visitors); a confirmed booking's
// VisitorsCount is counted exactly once in its slot's CurrentBookings.
// A cancelled booking is never resurrected.
type Booking struct {
	ID        int64  // internal surrogate key
	BookingID string // public collision-resistant identifier ("TCM...")
	UserID    int64
	TempleID  int64
	SlotID    int64

	VisitorsCount int
	Visitors      []Visitor
	Status        BookingStatus

	// Denormalized slot start for cancellation-window checks without a
	// second slot lookup.
	SlotStart time.Time

	ContactEmail   *string
	ContactPhone   *string
	SpecialRequest *string

	// QRPayload is the JSON payload encoded into the check-in QR code.
	QRPayload string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still holds slot capacity.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking may transition to cancelled.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsFinished returns true if the visit occurred or was missed.
func (b *Booking) IsFinished() bool {
	return b.Status == StatusCompleted || b.Status == StatusNoShow
}

// ValidStatusTransition reports whether the transition from the current
// status to next is allowed by the booking lifecycle.
func (b *Booking) ValidStatusTransition(next BookingStatus) bool {
	switch next {
	case StatusConfirmed:
		return b.Status == StatusPending
	case StatusCancelled:
		return b.CanBeCancelled()
	case StatusCompleted, StatusNoShow:
		return b.Status == StatusConfirmed
	default:
		return false
	}
}

// ReleasesCapacityOn reports whether transitioning to next must return the
// booking's visitor count to the slot counter. Only cancellation releases
// capacity: a completed visit already consumed it.
func (b *Booking) ReleasesCapacityOn(next BookingStatus) bool {
	return next == StatusCancelled && b.IsActive()
}
