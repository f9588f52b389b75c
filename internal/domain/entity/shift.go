package entity

import (
	"github.com/google/uuid"

	"github.com/sagarmamodia/RemediX/internal/clock"
)

// Shift is one recurring weekly working window of a doctor. StartTime and
// EndTime are minutes since local midnight in the clinic's canonical zone,
// with StartTime < EndTime, both within [0, 1440).
type Shift struct {
	ID           int           `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"doctor_id"`
	DayOfWeek    clock.Weekday `gorm:"type:varchar(3);not null" json:"day_of_week"`
	StartTime    int           `gorm:"not null" json:"start_time"`
	EndTime      int           `gorm:"not null" json:"end_time"`
	SlotDuration int           `gorm:"not null" json:"slot_duration"`
}

func (Shift) TableName() string {
	return "shifts"
}

// Contains reports whether the window [startMin, endMin) on the given weekday
// lies entirely inside this shift.
func (s *Shift) Contains(day clock.Weekday, startMin, endMin int) bool {
	return s.DayOfWeek == day && s.StartTime <= startMin && endMin <= s.EndTime
}

// DefaultShifts is the weekly set assigned at doctor registration: a morning
// and an evening shift on every weekday, 30-minute slots.
func DefaultShifts() []Shift {
	days := []clock.Weekday{clock.Monday, clock.Tuesday, clock.Wednesday, clock.Thursday, clock.Friday}
	shifts := make([]Shift, 0, 2*len(days))
	for _, day := range days {
		shifts = append(shifts,
			Shift{DayOfWeek: day, StartTime: 9 * 60, EndTime: 13 * 60, SlotDuration: 30},
			Shift{DayOfWeek: day, StartTime: 14 * 60, EndTime: 18 * 60, SlotDuration: 30},
		)
	}
	return shifts
}
