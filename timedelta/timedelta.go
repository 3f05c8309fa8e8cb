// Package timedelta implements a duration value normalized the way the
// Python/pandas Timedelta is: (days, seconds in [0, 86400), microseconds in
// [0, 1e6)) with the sign carried on the whole value.
package timedelta

import (
	"fmt"
	"math"

	"github.com/meenmo/epochlite/internal/epocherr"
)

// maxDays bounds the magnitude of a TimeDelta, matching the source's
// documented saturation limit.
const maxDays = 999_999_999

// Components are the raw fields a TimeDelta is built from before
// normalization folds and cascades them.
type Components struct {
	Weeks        float64
	Days         float64
	Hours        float64
	Minutes      float64
	Seconds      float64
	Milliseconds float64
	Microseconds float64
}

// TimeDelta is an immutable, normalized duration.
type TimeDelta struct {
	days         int64
	seconds      int64 // [0, 86400)
	microseconds int64 // [0, 1e6)
}

func floorDivMod(a, b float64) (q, r float64) {
	q = math.Floor(a / b)
	r = a - q*b
	return
}

// New normalizes Components per the fold/split/cascade algorithm:
//  1. fold weeks into days, milliseconds into microseconds
//  2. split fractional days into whole days and a fractional seconds-of-day
//  3. cascade microseconds -> seconds -> days via floor-division
//  4. canonicalize to seconds in [0, 86400), microseconds in [0, 1e6)
func New(c Components) (TimeDelta, error) {
	days := c.Days + c.Weeks*7
	seconds := c.Seconds + c.Minutes*60 + c.Hours*3600
	microseconds := c.Microseconds + c.Milliseconds*1000

	dayFloor, dayFrac := math.Modf(days)
	if dayFrac != 0 {
		secFrac, secWhole := math.Modf(dayFrac * 86400)
		seconds += secWhole
		microseconds += secFrac * 1e6
	}

	secFloor, secFrac := math.Modf(seconds)
	microseconds += secFrac * 1e6

	d := dayFloor
	s := secFloor

	usWhole := math.Round(microseconds)
	usCarrySec, us := floorDivMod(usWhole, 1e6)
	s += usCarrySec
	dCarry, s := floorDivMod(s, 86400)
	d += dCarry

	if math.Abs(d) > maxDays {
		return TimeDelta{}, epocherr.New("TimeDelta.New", epocherr.ErrOverflow, d)
	}

	return TimeDelta{days: int64(d), seconds: int64(s), microseconds: int64(us)}, nil
}

// MustNew panics on overflow; convenience for literal construction.
func MustNew(c Components) TimeDelta {
	td, err := New(c)
	if err != nil {
		panic(err)
	}
	return td
}

// FromDuration converts a stdlib time.Duration.
func FromDuration(d int64 /* nanoseconds */) (TimeDelta, error) {
	micros := float64(d) / 1000
	return New(Components{Microseconds: micros})
}

func (t TimeDelta) Days() int64         { return t.days }
func (t TimeDelta) Seconds() int64      { return t.seconds }
func (t TimeDelta) Microseconds() int64 { return t.microseconds }

// totalMicroseconds is used for comparison and arithmetic; it does not
// re-run normalization so callers must only call it on already-normalized
// values (true for every TimeDelta constructed via New/arithmetic below).
func (t TimeDelta) totalMicroseconds() float64 {
	return float64(t.days)*86400e6 + float64(t.seconds)*1e6 + float64(t.microseconds)
}

// Add returns t + other.
func (t TimeDelta) Add(other TimeDelta) (TimeDelta, error) {
	return New(Components{
		Days:         float64(t.days + other.days),
		Seconds:      float64(t.seconds + other.seconds),
		Microseconds: float64(t.microseconds + other.microseconds),
	})
}

// Sub returns t - other.
func (t TimeDelta) Sub(other TimeDelta) (TimeDelta, error) {
	return t.Add(other.Negate())
}

// Negate returns -t.
func (t TimeDelta) Negate() TimeDelta {
	neg, err := New(Components{
		Days:         -float64(t.days),
		Seconds:      -float64(t.seconds),
		Microseconds: -float64(t.microseconds),
	})
	if err != nil {
		// negation of an in-range value cannot overflow
		panic(err)
	}
	return neg
}

// MulInt scales by an exact integer multiplier.
func (t TimeDelta) MulInt(n int64) (TimeDelta, error) {
	return New(Components{
		Days:         float64(t.days) * float64(n),
		Seconds:      float64(t.seconds) * float64(n),
		Microseconds: float64(t.microseconds) * float64(n),
	})
}

// MulFloat scales by a float multiplier. The result is only exact when the
// scaled microsecond total is integral; otherwise it fails as the spec
// requires ("floating may fail unless exactly representable").
func (t TimeDelta) MulFloat(f float64) (TimeDelta, error) {
	total := t.totalMicroseconds() * f
	if math.Abs(total-math.Round(total)) > 1e-6 {
		return TimeDelta{}, epocherr.New("TimeDelta.MulFloat", epocherr.ErrInvalidArgument, f)
	}
	return New(Components{Microseconds: math.Round(total)})
}

// DivInt divides by an exact integer divisor.
func (t TimeDelta) DivInt(n int64) (TimeDelta, error) {
	if n == 0 {
		return TimeDelta{}, epocherr.New("TimeDelta.DivInt", epocherr.ErrInvalidArgument, n)
	}
	return New(Components{Microseconds: t.totalMicroseconds() / float64(n)})
}

// Compare returns -1, 0, or 1 by total microseconds, matching the spec's
// "three-way comparison by total microseconds".
func (t TimeDelta) Compare(other TimeDelta) int {
	a, b := t.totalMicroseconds(), other.totalMicroseconds()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (t TimeDelta) Equal(other TimeDelta) bool { return t.Compare(other) == 0 }

func (t TimeDelta) String() string {
	return fmt.Sprintf("%d days, %d seconds, %d microseconds", t.days, t.seconds, t.microseconds)
}
