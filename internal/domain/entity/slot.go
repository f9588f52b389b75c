package entity

import (
	"errors"
	"time"

	"github.com/sagarmamodia/RemediX/internal/clock"
)

// SlotDuration is the fixed length of every bookable slot.
const SlotDuration = 30 * time.Minute

var (
	ErrSlotInverted      = errors.New("slot start must be before its end")
	ErrSlotCrossesDay    = errors.New("slot must start and end on the same day")
	ErrSlotWrongDuration = errors.New("slot must be exactly 30 minutes long")
	ErrSlotInPast        = errors.New("slot must not start in the past")
)

// CandidateSlot is an ephemeral [StartTime, EndTime) window proposed by a
// patient. It is validated at the input boundary before any availability
// check or charge runs.
type CandidateSlot struct {
	StartTime time.Time
	EndTime   time.Time
}

// Validate enforces the slot wire contract: start < end, same civil day in
// the clinic zone, exactly 30 minutes, and not in the past.
func (s CandidateSlot) Validate(c *clock.Clock, now time.Time) error {
	if !s.StartTime.Before(s.EndTime) {
		return ErrSlotInverted
	}
	if !c.SameLocalDay(s.StartTime, s.EndTime) {
		return ErrSlotCrossesDay
	}
	if s.EndTime.Sub(s.StartTime) != SlotDuration {
		return ErrSlotWrongDuration
	}
	if s.StartTime.Before(now) {
		return ErrSlotInPast
	}
	return nil
}
