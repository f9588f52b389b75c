package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizeConvertsToClinicZone(t *testing.T) {
	c, err := New("Asia/Kolkata")
	require.NoError(t, err)

	// 2025-06-02 is a Monday. 03:30 UTC is 09:00 IST (+05:30).
	instant := time.Date(2025, 6, 2, 3, 30, 0, 0, time.UTC)

	day, minutes := c.Localize(instant)
	assert.Equal(t, Monday, day)
	assert.Equal(t, 9*60, minutes)
}

func TestLocalizeCrossesDayBoundary(t *testing.T) {
	c, err := New("Asia/Kolkata")
	require.NoError(t, err)

	// 20:00 UTC on Sunday is 01:30 IST on Monday.
	instant := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	day, minutes := c.Localize(instant)
	assert.Equal(t, Monday, day)
	assert.Equal(t, 90, minutes)
}

func TestLocalizeIgnoresSourceZone(t *testing.T) {
	c, err := New("Asia/Kolkata")
	require.NoError(t, err)

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// The same instant expressed in two zones must localize identically.
	utcInstant := time.Date(2025, 6, 2, 3, 30, 0, 0, time.UTC)
	nyInstant := utcInstant.In(ny)

	dayUTC, minUTC := c.Localize(utcInstant)
	dayNY, minNY := c.Localize(nyInstant)
	assert.Equal(t, dayUTC, dayNY)
	assert.Equal(t, minUTC, minNY)
}

func TestSameLocalDay(t *testing.T) {
	c, err := New("Asia/Kolkata")
	require.NoError(t, err)

	// 18:00 UTC and 19:00 UTC on June 1st are both June 1st/2nd depending on
	// the zone: 18:00 UTC = 23:30 IST (June 1), 19:00 UTC = 00:30 IST (June 2).
	a := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	b := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)
	assert.False(t, c.SameLocalDay(a, b))

	assert.True(t, c.SameLocalDay(a, a.Add(10*time.Minute)))
}

func TestNewRejectsUnknownZone(t *testing.T) {
	_, err := New("Not/AZone")
	assert.Error(t, err)
}

func TestWeekdayTableMatchesTimePackage(t *testing.T) {
	assert.Equal(t, Sunday, Weekdays[time.Sunday])
	assert.Equal(t, Saturday, Weekdays[time.Saturday])
}
