package domain

import (
	"time"

	"github.com/m04kA/TCM-VisitService/pkg/types"
)

// Coordinates is a geographic point attached to a temple or an area.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PeakWindow is an hour range [StartHour, EndHour] (inclusive) during which
// visitor inflow is multiplied by PeakVisitorFactor.
type PeakWindow struct {
	StartHour int `json:"startHour"`
	EndHour   int `json:"endHour"`
}

// Contains reports whether the given hour falls inside the window.
func (w PeakWindow) Contains(hour int) bool {
	return hour >= w.StartHour && hour <= w.EndHour
}

// DefaultPeakWindows returns the morning and evening rush windows used when
// a temple has no windows of its own configured.
func DefaultPeakWindows() []PeakWindow {
	return []PeakWindow{
		{StartHour: 8, EndHour: 10},
		{StartHour: 18, EndHour: 20},
	}
}

// CapacityConfig is a temple's admission capacity configuration.
type CapacityConfig struct {
	MaxVisitorsPerSlot int          `json:"maxVisitorsPerSlot"`
	TotalDailyCapacity int          `json:"totalDailyCapacity"`
	PeakWindows        []PeakWindow `json:"peakWindows,omitempty"`
}

// EffectivePeakWindows returns the configured peak windows, falling back to
// the defaults when none are set.
func (c CapacityConfig) EffectivePeakWindows() []PeakWindow {
	if len(c.PeakWindows) == 0 {
		return DefaultPeakWindows()
	}
	return c.PeakWindows
}

// IsPeakHour reports whether the hour falls into any peak window.
func (c CapacityConfig) IsPeakHour(hour int) bool {
	for _, w := range c.EffectivePeakWindows() {
		if w.Contains(hour) {
			return true
		}
	}
	return false
}

// Temple represents a visitation site with bounded slot capacity.
// Immutable during a booking transaction; mutated only by operator updates.
type Temple struct {
	ID                  int64
	Name                string
	City                string
	State               string
	Coordinates         Coordinates
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	SlotDurationMinutes int
	Capacity            CapacityConfig
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// OperatingHours returns the [first, last] simulation hours for the temple.
// Falls back to the 6-22 default window when timings are not configured.
func (t *Temple) OperatingHours() (int, int) {
	if t.OpenTime.IsZero() || t.CloseTime.IsZero() {
		return SimulationStartHour, SimulationEndHour
	}
	start, end := t.OpenTime.Hour(), t.CloseTime.Hour()
	if end <= start {
		return SimulationStartHour, SimulationEndHour
	}
	return start, end
}

// SlotDuration returns the configured slot duration, defaulting when unset.
func (t *Temple) SlotDuration() int {
	if t.SlotDurationMinutes <= 0 {
		return DefaultSlotDurationMinutes
	}
	return t.SlotDurationMinutes
}
