package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString_Valid(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")

	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())
	assert.Equal(t, 9, ts.Hour())
}

func TestNewTimeStringFromString_Invalid(t *testing.T) {
	for _, raw := range []string{"", "9:30", "24:00", "12:60", "noon", "12-30"} {
		_, err := NewTimeStringFromString(raw)
		assert.ErrorIs(t, err, ErrInvalidTimeString, "input %q", raw)
	}
}

func TestTimeString_Minutes(t *testing.T) {
	ts := TimeString("06:15")

	minutes, err := ts.Minutes()

	require.NoError(t, err)
	assert.Equal(t, 6*60+15, minutes)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("09:30")

	next, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), next)

	// Wraps around midnight
	late := TimeString("23:45")
	wrapped, err := late.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:15"), wrapped)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("06:00").IsBefore("22:00"))
	assert.True(t, TimeString("22:00").IsAfter("06:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))
}

func TestTimeString_On(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	anchored, err := TimeString("14:30").On(date)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC), anchored)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("08:00"))
	assert.Equal(t, TimeString("08:00"), ts)

	// TIME columns arrive as "HH:MM:SS"
	require.NoError(t, ts.Scan("08:30:00"))
	assert.Equal(t, TimeString("08:30"), ts)

	require.NoError(t, ts.Scan([]byte("09:00")))
	assert.Equal(t, TimeString("09:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}
