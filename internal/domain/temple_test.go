package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapacityConfig_IsPeakHour(t *testing.T) {
	// Defaults: 8-10 and 18-20 inclusive
	var cfg CapacityConfig

	assert.False(t, cfg.IsPeakHour(7))
	assert.True(t, cfg.IsPeakHour(8))
	assert.True(t, cfg.IsPeakHour(10))
	assert.False(t, cfg.IsPeakHour(11))
	assert.True(t, cfg.IsPeakHour(18))
	assert.True(t, cfg.IsPeakHour(20))
	assert.False(t, cfg.IsPeakHour(21))

	cfg.PeakWindows = []PeakWindow{{StartHour: 12, EndHour: 13}}
	assert.True(t, cfg.IsPeakHour(12))
	assert.False(t, cfg.IsPeakHour(8))
}

func TestTemple_OperatingHours(t *testing.T) {
	temple := &Temple{OpenTime: "07:00", CloseTime: "21:30"}
	start, end := temple.OperatingHours()
	assert.Equal(t, 7, start)
	assert.Equal(t, 21, end)

	// Unset or inverted timings fall back to the default 6-22 window
	temple = &Temple{}
	start, end = temple.OperatingHours()
	assert.Equal(t, SimulationStartHour, start)
	assert.Equal(t, SimulationEndHour, end)

	temple = &Temple{OpenTime: "22:00", CloseTime: "06:00"}
	start, end = temple.OperatingHours()
	assert.Equal(t, SimulationStartHour, start)
	assert.Equal(t, SimulationEndHour, end)
}
