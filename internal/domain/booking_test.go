package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooking_ValidStatusTransition(t *testing.T) {
	pending := &Booking{Status: StatusPending}
	confirmed := &Booking{Status: StatusConfirmed}
	cancelled := &Booking{Status: StatusCancelled}
	completed := &Booking{Status: StatusCompleted}

	assert.True(t, pending.ValidStatusTransition(StatusConfirmed))
	assert.True(t, pending.ValidStatusTransition(StatusCancelled))
	assert.False(t, pending.ValidStatusTransition(StatusCompleted))
	assert.False(t, pending.ValidStatusTransition(StatusNoShow))

	assert.True(t, confirmed.ValidStatusTransition(StatusCancelled))
	assert.True(t, confirmed.ValidStatusTransition(StatusCompleted))
	assert.True(t, confirmed.ValidStatusTransition(StatusNoShow))
	assert.False(t, confirmed.ValidStatusTransition(StatusConfirmed))

	// Cancelled bookings are never resurrected
	assert.False(t, cancelled.ValidStatusTransition(StatusConfirmed))
	assert.False(t, cancelled.ValidStatusTransition(StatusCancelled))
	assert.False(t, cancelled.ValidStatusTransition(StatusCompleted))

	assert.False(t, completed.ValidStatusTransition(StatusCancelled))
	assert.False(t, completed.ValidStatusTransition(StatusNoShow))
}

func TestBooking_ReleasesCapacityOn(t *testing.T) {
	confirmed := &Booking{Status: StatusConfirmed}
	pending := &Booking{Status: StatusPending}
	cancelled := &Booking{Status: StatusCancelled}

	// Only a cancellation of an active booking returns capacity
	assert.True(t, confirmed.ReleasesCapacityOn(StatusCancelled))
	assert.True(t, pending.ReleasesCapacityOn(StatusCancelled))
	assert.False(t, confirmed.ReleasesCapacityOn(StatusCompleted))
	assert.False(t, confirmed.ReleasesCapacityOn(StatusNoShow))
	assert.False(t, cancelled.ReleasesCapacityOn(StatusCancelled))
}
