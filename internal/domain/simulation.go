package domain

import "time"

// Density is a coarse classification of occupancy percentage.
type Density string

const (
	DensityLow      Density = "low"
	DensityMedium   Density = "medium"
	DensityHigh     Density = "high"
	DensityCritical Density = "critical"
)

// ClassifyDensity maps an occupancy percentage to a density class.
func ClassifyDensity(occupancyPercentage int) Density {
	switch {
	case occupancyPercentage > 90:
		return DensityCritical
	case occupancyPercentage > 70:
		return DensityHigh
	case occupancyPercentage > 40:
		return DensityMedium
	default:
		return DensityLow
	}
}

// WaitMinutesForOccupancy is the coarse step function mapping occupancy to
// an expected wait in minutes. Callers needing finer granularity should use
// the wait-time estimator instead.
func WaitMinutesForOccupancy(occupancyPercentage int) int {
	switch {
	case occupancyPercentage > 80:
		return 25
	case occupancyPercentage > 60:
		return 15
	case occupancyPercentage > 30:
		return 5
	default:
		return 0
	}
}

// WaitLevel classifies an estimated wait in minutes.
type WaitLevel string

const (
	WaitLevelLow    WaitLevel = "low"
	WaitLevelMedium WaitLevel = "medium"
	WaitLevelHigh   WaitLevel = "high"
)

// ClassifyWait maps estimated wait minutes to a wait level.
func ClassifyWait(minutes int) WaitLevel {
	switch {
	case minutes > 60:
		return WaitLevelHigh
	case minutes > 30:
		return WaitLevelMedium
	default:
		return WaitLevelLow
	}
}

// AreaOccupancy is the occupancy of one named area within a temple.
type AreaOccupancy struct {
	Name                string
	Coordinates         Coordinates
	Capacity            int
	Occupancy           int
	OccupancyPercentage int
	Density             Density
}

// HourlyRecord is one hour of the simulated occupancy curve.
type HourlyRecord struct {
	Hour                int
	ExpectedVisitors    int
	ActualVisitors      int
	OccupancyPercentage int
	CrowdDensity        Density
	WaitTimeMinutes     int
	Areas               []AreaOccupancy
}

// WeatherImpact describes how current weather affects visitor flow.
type WeatherImpact struct {
	Condition   string
	Temperature float64
	ImpactLevel string
}

// SimulationSnapshot is a derived, read-only crowd estimate for one temple
// and day. It is never persisted as a source of truth: it is always
// reconstructible from the temple capacity configuration.
type SimulationSnapshot struct {
	TempleID      int64
	TempleName    string
	Date          time.Time
	CurrentStatus HourlyRecord
	HourlyData    []HourlyRecord
	PeakWindows   []PeakWindow
	WeatherImpact WeatherImpact
}
