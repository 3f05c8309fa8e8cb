package offset

import (
	"time"

	"github.com/meenmo/epochlite/calendar"
)

// BusinessDay advances by whole business days using the default Mon-Fri,
// no-holiday calendar. TimeOffset, when non-zero, is added after the
// business-day arithmetic, same as the optional time_offset parameter on
// the cbday/bday factories.
type BusinessDay struct {
	n          int
	TimeOffset time.Duration
}

func NewBusinessDay(n int) BusinessDay { return BusinessDay{n: n} }

// NewBusinessDayWithTimeOffset builds a BusinessDay that adds timeOffset
// after the business-day arithmetic.
func NewBusinessDayWithTimeOffset(n int, timeOffset time.Duration) BusinessDay {
	return BusinessDay{n: n, TimeOffset: timeOffset}
}

func (b BusinessDay) N() int { return b.n }
func (b BusinessDay) Negate() Offset {
	return BusinessDay{n: -b.n, TimeOffset: b.TimeOffset}
}

func (b BusinessDay) Apply(t time.Time) (time.Time, error) {
	return applyBusinessDays(calendar.Default(), t, b.n, b.TimeOffset)
}

func (b BusinessDay) IsOnOffset(t time.Time) bool {
	return calendar.Default().IsBusday(t)
}

// CustomBusinessDay advances by whole business days under a caller-supplied
// weekmask and holiday calendar, delegating entirely to
// calendar.BusinessDayCalendar.
type CustomBusinessDay struct {
	n          int
	cal        *calendar.BusinessDayCalendar
	TimeOffset time.Duration
}

// NewCustomBusinessDay builds a CustomBusinessDay offset over cal.
func NewCustomBusinessDay(n int, cal *calendar.BusinessDayCalendar) CustomBusinessDay {
	return CustomBusinessDay{n: n, cal: cal}
}

// NewCustomBusinessDayWithTimeOffset builds a CustomBusinessDay that adds
// timeOffset after the business-day arithmetic.
func NewCustomBusinessDayWithTimeOffset(n int, cal *calendar.BusinessDayCalendar, timeOffset time.Duration) CustomBusinessDay {
	return CustomBusinessDay{n: n, cal: cal, TimeOffset: timeOffset}
}

func (c CustomBusinessDay) N() int { return c.n }
func (c CustomBusinessDay) Negate() Offset {
	return CustomBusinessDay{n: -c.n, cal: c.cal, TimeOffset: c.TimeOffset}
}

func (c CustomBusinessDay) Apply(t time.Time) (time.Time, error) {
	return applyBusinessDays(c.cal, t, c.n, c.TimeOffset)
}

func (c CustomBusinessDay) IsOnOffset(t time.Time) bool {
	return c.cal.IsBusday(t)
}

// applyBusinessDays advances t's calendar date by n business days under
// cal, preserving t's own wall-clock time of day, then adds timeOffset. A
// start that is not a business day is first rolled back when n > 0 and
// forward otherwise, so the first step lands on the adjacent business day.
func applyBusinessDays(cal *calendar.BusinessDayCalendar, t time.Time, n int, timeOffset time.Duration) (time.Time, error) {
	wallClock := t.Sub(truncateToDate(t))
	roll := calendar.RollFollowing
	if n > 0 {
		roll = calendar.RollPreceding
	}
	d, err := cal.Offset(t, n, roll)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(wallClock + timeOffset), nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, t.Location())
}
