package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarmamodia/RemediX/internal/clock"
)

func istClock(t *testing.T) *clock.Clock {
	t.Helper()
	c, err := clock.New("Asia/Kolkata")
	require.NoError(t, err)
	return c
}

func TestCandidateSlotValidate(t *testing.T) {
	c := istClock(t)
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// 09:00-09:30 IST on Monday June 2nd.
	start := time.Date(2025, 6, 2, 3, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		slot CandidateSlot
		want error
	}{
		{"valid", CandidateSlot{start, start.Add(30 * time.Minute)}, nil},
		{"inverted", CandidateSlot{start.Add(30 * time.Minute), start}, ErrSlotInverted},
		{"zero length", CandidateSlot{start, start}, ErrSlotInverted},
		{"too long", CandidateSlot{start, start.Add(time.Hour)}, ErrSlotWrongDuration},
		{"too short", CandidateSlot{start, start.Add(15 * time.Minute)}, ErrSlotWrongDuration},
		{"in the past", CandidateSlot{now.Add(-time.Hour), now.Add(-30 * time.Minute)}, ErrSlotInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slot.Validate(c, now)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestCandidateSlotCrossesLocalMidnight(t *testing.T) {
	c := istClock(t)
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// 23:45 IST to 00:15 IST the next day: 30 minutes but two civil days.
	start := time.Date(2025, 6, 2, 18, 15, 0, 0, time.UTC)
	slot := CandidateSlot{start, start.Add(30 * time.Minute)}
	assert.ErrorIs(t, slot.Validate(c, now), ErrSlotCrossesDay)
}

func TestConsultationOverlaps(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	consultation := &Consultation{
		StartTime: base,
		EndTime:   base.Add(30 * time.Minute),
	}

	// Partial overlap conflicts.
	assert.True(t, consultation.Overlaps(base.Add(15*time.Minute), base.Add(45*time.Minute)))
	// Containment conflicts.
	assert.True(t, consultation.Overlaps(base.Add(-time.Hour), base.Add(time.Hour)))
	// Identical window conflicts.
	assert.True(t, consultation.Overlaps(base, base.Add(30*time.Minute)))
	// Boundary touch is not a conflict.
	assert.False(t, consultation.Overlaps(base.Add(30*time.Minute), base.Add(time.Hour)))
	assert.False(t, consultation.Overlaps(base.Add(-30*time.Minute), base))
	// Disjoint windows do not conflict.
	assert.False(t, consultation.Overlaps(base.Add(2*time.Hour), base.Add(3*time.Hour)))
}

func TestShiftContains(t *testing.T) {
	shift := &Shift{DayOfWeek: clock.Monday, StartTime: 9 * 60, EndTime: 13 * 60, SlotDuration: 30}

	assert.True(t, shift.Contains(clock.Monday, 9*60, 9*60+30))
	assert.True(t, shift.Contains(clock.Monday, 12*60+30, 13*60))
	assert.False(t, shift.Contains(clock.Tuesday, 9*60, 9*60+30))
	assert.False(t, shift.Contains(clock.Monday, 8*60+45, 9*60+15))
	assert.False(t, shift.Contains(clock.Monday, 12*60+45, 13*60+15))
}

func TestDefaultShifts(t *testing.T) {
	shifts := DefaultShifts()
	assert.Len(t, shifts, 10)
	for _, s := range shifts {
		assert.Less(t, s.StartTime, s.EndTime)
		assert.GreaterOrEqual(t, s.StartTime, 0)
		assert.Less(t, s.EndTime, clock.MinutesPerDay)
		assert.Equal(t, 30, s.SlotDuration)
	}
}
