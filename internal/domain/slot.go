package domain

import (
	"time"

	"github.com/m04kA/TCM-VisitService/pkg/types"
)

// Slot is a bounded time window at a temple with a maximum visitor capacity.
// The CurrentBookings counter is the single source of truth for admission
// control: bookings never track remaining capacity on their own and only
// ever mutate the counter through the capacity allocator.
// Invariant: 0 <= CurrentBookings <= MaxCapacity at all times, including
// under concurrent writers.
type Slot struct {
	ID              int64
	TempleID        int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	MaxCapacity     int
	CurrentBookings int
	IsAvailable     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RemainingCapacity returns the number of free capacity units.
func (s *Slot) RemainingCapacity() int {
	remaining := s.MaxCapacity - s.CurrentBookings
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsFull returns true if the slot has no free capacity units.
func (s *Slot) IsFull() bool {
	return s.CurrentBookings >= s.MaxCapacity
}

// HasCapacityFor returns true if the slot can admit the given visitor count.
func (s *Slot) HasCapacityFor(units int) bool {
	return s.CurrentBookings+units <= s.MaxCapacity
}

// OccupancyPercentage returns the occupancy rate as a percentage (0-100).
func (s *Slot) OccupancyPercentage() int {
	if s.MaxCapacity == 0 {
		return 0
	}
	pct := s.CurrentBookings * 100 / s.MaxCapacity
	if pct > 100 {
		return 100
	}
	return pct
}

// StartDateTime anchors the slot start to its date.
func (s *Slot) StartDateTime() (time.Time, error) {
	return s.StartTime.On(s.Date)
}
