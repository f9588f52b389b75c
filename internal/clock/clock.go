package clock

import (
	"fmt"
	"time"
)

// Weekday is the three-letter day name used by shifts ("Sun" .. "Sat").
type Weekday string

const (
	Sunday    Weekday = "Sun"
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
	Saturday  Weekday = "Sat"
)

// Weekdays is indexed by time.Weekday (Sunday = 0). This table is owned here;
// no other package defines day names.
var Weekdays = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// MinutesPerDay is the upper bound (exclusive) for minutes-since-midnight values.
const MinutesPerDay = 24 * 60

// Clock converts absolute instants into civil time in the clinic's canonical
// time zone. All shift matching goes through it; the host zone is never used.
type Clock struct {
	loc *time.Location
}

func New(timezone string) (*Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load clinic timezone %q: %w", timezone, err)
	}
	return &Clock{loc: loc}, nil
}

// Localize returns the civil weekday and minutes since local midnight for an
// absolute instant, computed in the canonical zone.
func (c *Clock) Localize(t time.Time) (Weekday, int) {
	local := t.In(c.loc)
	return Weekdays[local.Weekday()], local.Hour()*60 + local.Minute()
}

// SameLocalDay reports whether two instants fall on the same civil day in the
// canonical zone.
func (c *Clock) SameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.In(c.loc).Date()
	by, bm, bd := b.In(c.loc).Date()
	return ay == by && am == bm && ad == bd
}

// Location exposes the canonical zone for callers that format times.
func (c *Clock) Location() *time.Location {
	return c.loc
}
