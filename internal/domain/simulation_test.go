package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDensity(t *testing.T) {
	assert.Equal(t, DensityLow, ClassifyDensity(0))
	assert.Equal(t, DensityLow, ClassifyDensity(40))
	assert.Equal(t, DensityMedium, ClassifyDensity(41))
	assert.Equal(t, DensityMedium, ClassifyDensity(70))
	assert.Equal(t, DensityHigh, ClassifyDensity(71))
	assert.Equal(t, DensityHigh, ClassifyDensity(90))
	assert.Equal(t, DensityCritical, ClassifyDensity(91))
	assert.Equal(t, DensityCritical, ClassifyDensity(100))
}

func TestWaitMinutesForOccupancy(t *testing.T) {
	assert.Equal(t, 0, WaitMinutesForOccupancy(0))
	assert.Equal(t, 0, WaitMinutesForOccupancy(30))
	assert.Equal(t, 5, WaitMinutesForOccupancy(31))
	assert.Equal(t, 5, WaitMinutesForOccupancy(60))
	assert.Equal(t, 15, WaitMinutesForOccupancy(61))
	assert.Equal(t, 15, WaitMinutesForOccupancy(80))
	assert.Equal(t, 25, WaitMinutesForOccupancy(81))
	assert.Equal(t, 25, WaitMinutesForOccupancy(100))
}

func TestClassifyWait(t *testing.T) {
	assert.Equal(t, WaitLevelLow, ClassifyWait(0))
	assert.Equal(t, WaitLevelLow, ClassifyWait(30))
	assert.Equal(t, WaitLevelMedium, ClassifyWait(31))
	assert.Equal(t, WaitLevelMedium, ClassifyWait(60))
	assert.Equal(t, WaitLevelHigh, ClassifyWait(61))
}
