package domain

// Booking validation constants
const (
	MinVisitorsPerBooking = 1
	MaxVisitorsPerBooking = 10

	MaxSpecialRequestLength     = 500
	MaxCancellationReasonLength = 500
)

// Default slot configuration values
const (
	DefaultSlotDurationMinutes = 30
	DefaultLanes               = 2
)

// Crowd simulation constants
const (
	SimulationStartHour = 6
	SimulationEndHour   = 22 // inclusive

	// DefaultSimulationCapacity is used when a temple has no per-slot
	// capacity configured, so the occupancy curve can still be built.
	DefaultSimulationCapacity = 300

	PeakVisitorFactor    = 1.6
	OffPeakVisitorFactor = 0.7

	NoiseFactorMin = 0.8
	NoiseFactorMax = 1.3

	QueueAreaCapacityShare  = 0.5
	QueueAreaOccupancyShare = 0.5
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
