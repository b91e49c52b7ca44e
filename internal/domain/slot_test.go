package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlot_CapacityHelpers(t *testing.T) {
	slot := &Slot{MaxCapacity: 10, CurrentBookings: 8}

	assert.Equal(t, 2, slot.RemainingCapacity())
	assert.False(t, slot.IsFull())
	assert.True(t, slot.HasCapacityFor(2))
	assert.False(t, slot.HasCapacityFor(3))
	assert.Equal(t, 80, slot.OccupancyPercentage())

	slot.CurrentBookings = 10
	assert.True(t, slot.IsFull())
	assert.Equal(t, 0, slot.RemainingCapacity())
}
