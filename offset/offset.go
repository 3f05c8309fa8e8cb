// Package offset implements the date-offset family: tick-based fixed
// increments, calendar-anchored month/quarter/year offsets, week offsets,
// business-day offsets, and relative-delta offsets. Each variant is a small
// tagged struct rather than a class hierarchy, the way the teacher's
// calendar code favors plain structs over interfaces-for-everything.
package offset

import (
	"time"

	"github.com/meenmo/epochlite/calendar"
	"github.com/meenmo/epochlite/internal/epocherr"
	"github.com/meenmo/epochlite/relativedelta"
)

// Offset advances or retreats a date by one conceptual "tick" of the
// offset's own frequency, n times.
type Offset interface {
	// N returns the signed multiplier; negative means "go backward".
	N() int
	// Negate returns the same offset with N() flipped.
	Negate() Offset
	// Apply advances t by this offset.
	Apply(t time.Time) (time.Time, error)
	// IsOnOffset reports whether t already falls on a boundary this offset
	// would produce (e.g. MonthEnd.IsOnOffset reports whether t is the last
	// calendar day of its month).
	IsOnOffset(t time.Time) bool
}

// RollForward advances t to the next date on the offset's boundary,
// returning t unchanged if it is already on one.
func RollForward(o Offset, t time.Time) (time.Time, error) {
	if o.IsOnOffset(t) {
		return t, nil
	}
	return o.Apply(t)
}

// RollBack retreats t to the previous date on the offset's boundary,
// returning t unchanged if it is already on one.
func RollBack(o Offset, t time.Time) (time.Time, error) {
	if o.IsOnOffset(t) {
		return t, nil
	}
	return o.Negate().Apply(t)
}

// AddArray applies o to every element of ts, propagating the first error.
func AddArray(o Offset, ts []time.Time) ([]time.Time, error) {
	out := make([]time.Time, len(ts))
	for i, t := range ts {
		shifted, err := o.Apply(t)
		if err != nil {
			return nil, err
		}
		out[i] = shifted
	}
	return out, nil
}

// Anchor selects whether a calendar offset lands on the start or end of its
// period.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorEnd
)

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// shiftMonth adds n calendar months to t, clamping the day to the
// destination month's length, then applies the requested anchor.
func shiftMonth(t time.Time, n int, anchor Anchor) time.Time {
	total := int(t.Month()) - 1 + n
	year := t.Year() + total/12
	month := total % 12
	if month < 0 {
		month += 12
		year--
	}
	m := time.Month(month + 1)
	switch anchor {
	case AnchorEnd:
		return time.Date(year, m, daysInMonth(year, m), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	default:
		return time.Date(year, m, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	}
}
