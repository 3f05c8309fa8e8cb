// Package relativedelta implements a hybrid absolute/relative calendar delta,
// the calendar arithmetic behind the offset package's RelativeDeltaOffset
// (its month, quarter and year offsets do their own month shifting).
package relativedelta

import (
	"time"

	"github.com/meenmo/epochlite/internal/epocherr"
)

// Weekday anchors a RelativeDelta to the nth occurrence of a weekday, mirroring
// dateutil's relativedelta(weekday=MO(+2)) construct.
type Weekday struct {
	Day time.Weekday
	N   int // defaults to 1 when zero
}

func (w Weekday) n() int {
	if w.N == 0 {
		return 1
	}
	return w.N
}

// Option carries every field a RelativeDelta can be built from. Relative
// fields are additive; Absolute fields (pointers, nil means "unset")
// override the target datetime's corresponding field outright.
type Option struct {
	// Relative (additive).
	Years, Months, Weeks, Days    int
	Hours, Minutes, Seconds       int
	Microseconds                  int
	Leapdays                      int

	// Absolute (overriding); nil means unset.
	Year, Month, Day                     *int
	Hour, Minute, Second, Microsecond    *int
	WeekdayAnchor                        *Weekday
	YearDay, NonLeapYearDay              *int

	// Diff mode: when both are set, the constructor ignores every other
	// field and computes the delta such that DT2.Apply(result) == DT1.
	DT1, DT2 *time.Time
}

// RelativeDelta is immutable once constructed; Fix normalizes it.
type RelativeDelta struct {
	years, months, weeks, days       int
	hours, minutes, seconds          int
	microseconds                     int
	leapdays                         int
	year, month, day                 *int
	hour, minute, second, microsecond *int
	weekday                          *Weekday
	hasTime                         bool
}

func intPtr(v int) *int { return &v }

func yearDayToMonthDay(yday int) (month, day int, err error) {
	bounds := [12]int{31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 366}
	for i, upper := range bounds {
		if yday <= upper {
			month = i + 1
			if i == 0 {
				day = yday
			} else {
				day = yday - bounds[i-1]
			}
			return month, day, nil
		}
	}
	return 0, 0, epocherr.New("relativedelta.New", epocherr.ErrInvalidArgument, yday)
}

// New builds a RelativeDelta from Option, folding weeks into days and
// resolving yearday/nlyearday into month/day, then normalizing via fix.
func New(opt Option) (RelativeDelta, error) {
	if opt.DT1 != nil && opt.DT2 != nil {
		return diff(*opt.DT1, *opt.DT2), nil
	}

	rd := RelativeDelta{
		years:        opt.Years,
		months:       opt.Months,
		days:         opt.Days + opt.Weeks*7,
		leapdays:     opt.Leapdays,
		hours:        opt.Hours,
		minutes:      opt.Minutes,
		seconds:      opt.Seconds,
		microseconds: opt.Microseconds,
		weekday:      opt.WeekdayAnchor,
		year:         opt.Year,
		month:        opt.Month,
		day:          opt.Day,
		hour:         opt.Hour,
		minute:       opt.Minute,
		second:       opt.Second,
		microsecond:  opt.Microsecond,
	}

	var yday int
	switch {
	case opt.NonLeapYearDay != nil:
		yday = *opt.NonLeapYearDay
	case opt.YearDay != nil:
		yday = *opt.YearDay
		if yday > 59 {
			rd.leapdays = -1
		}
	}
	if yday != 0 {
		month, day, err := yearDayToMonthDay(yday)
		if err != nil {
			return RelativeDelta{}, err
		}
		rd.month = intPtr(month)
		rd.day = intPtr(day)
	}

	rd.fix()
	return rd, nil
}

func floorDivMod(a, b int) (q, r int) {
	q = a / b
	r = a % b
	if r != 0 && (r < 0) != (b < 0) {
		q--
		r += b
	}
	return
}

// fix cascades microseconds->seconds->minutes->hours and months->years by
// floor-divmod, keeping residues in canonical ranges, and recomputes hasTime.
func (r *RelativeDelta) fix() {
	if abs(r.microseconds) > 999999 {
		q, m := floorDivMod(r.microseconds, 1000000)
		r.microseconds = m
		r.seconds += q
	}
	if abs(r.seconds) > 59 {
		q, m := floorDivMod(r.seconds, 60)
		r.seconds = m
		r.minutes += q
	}
	if abs(r.minutes) > 59 {
		q, m := floorDivMod(r.minutes, 60)
		r.minutes = m
		r.hours += q
	}
	if abs(r.hours) > 23 {
		q, m := floorDivMod(r.hours, 24)
		r.hours = m
		r.days += q
	}
	if abs(r.months) > 11 {
		q, m := floorDivMod(r.months, 12)
		r.months = m
		r.years += q
	}
	r.hasTime = r.hours != 0 || r.minutes != 0 || r.seconds != 0 || r.microseconds != 0 ||
		r.hour != nil || r.minute != nil || r.second != nil || r.microsecond != nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func pymod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// diff implements the (dt1, dt2) constructor: compute the relative-field set
// such that dt2.Apply(result) == dt1, iterating months by +-1 until the
// month-adjusted dt2 reaches or passes dt1, then differencing the remainder.
func diff(dt1, dt2 time.Time) RelativeDelta {
	months := (dt1.Year()-dt2.Year())*12 + (int(dt1.Month()) - int(dt2.Month()))
	rd := monthsToRelativeDelta(months)

	dtm, _ := rd.Apply(dt2)

	var increment int
	var forward bool
	if dt1.Before(dt2) {
		forward = false
		increment = -1
	} else {
		forward = true
		increment = 1
	}

	for {
		if forward && !dt1.After(dtm) {
			break
		}
		if !forward && !dt1.Before(dtm) {
			break
		}
		months += increment
		rd = monthsToRelativeDelta(months)
		dtm, _ = rd.Apply(dt2)
	}

	remainder := dt1.Sub(dtm)
	rd.seconds = int(remainder / time.Second)
	rd.microseconds = int((remainder % time.Second) / time.Microsecond)
	rd.fix()
	return rd
}

func monthsToRelativeDelta(months int) RelativeDelta {
	rd := RelativeDelta{months: months}
	rd.fix()
	return rd
}

// Normalized returns a copy re-fixed via fix. Relative fields are stored as
// integers, so there are no fractional parts to cascade down to microseconds.
func (r RelativeDelta) Normalized() RelativeDelta {
	// All fields here are already integral (fix keeps them so); Normalized
	// exists for API parity with sources that track relative fields as
	// floats. With integral storage this is idempotent.
	out := r
	out.fix()
	return out
}

// IsZero reports whether every field is zero/unset.
func (r RelativeDelta) IsZero() bool {
	return r.years == 0 && r.months == 0 && r.days == 0 && r.hours == 0 &&
		r.minutes == 0 && r.seconds == 0 && r.microseconds == 0 && r.leapdays == 0 &&
		r.year == nil && r.month == nil && r.day == nil && r.hour == nil &&
		r.minute == nil && r.second == nil && r.microsecond == nil && r.weekday == nil
}

func overrideInt(a, b *int) *int {
	if b != nil {
		return b
	}
	return a
}
func overrideWeekday(a, b *Weekday) *Weekday {
	if b != nil {
		return b
	}
	return a
}

// Add is componentwise for relative fields, except leapdays, which is taken
// from other when non-zero; absolute fields from other override this one's.
func (r RelativeDelta) Add(other RelativeDelta) RelativeDelta {
	out := RelativeDelta{
		years:        r.years + other.years,
		months:       r.months + other.months,
		days:         r.days + other.days,
		leapdays:     pickNonZero(other.leapdays, r.leapdays),
		hours:        r.hours + other.hours,
		minutes:      r.minutes + other.minutes,
		seconds:      r.seconds + other.seconds,
		microseconds: r.microseconds + other.microseconds,
		year:         overrideInt(r.year, other.year),
		month:        overrideInt(r.month, other.month),
		day:          overrideInt(r.day, other.day),
		hour:         overrideInt(r.hour, other.hour),
		minute:       overrideInt(r.minute, other.minute),
		second:       overrideInt(r.second, other.second),
		microsecond:  overrideInt(r.microsecond, other.microsecond),
		weekday:      overrideWeekday(r.weekday, other.weekday),
	}
	out.fix()
	return out
}

func pickNonZero(a, b int) int {
	if a != 0 {
		return a
	}
	return b
}

// Sub returns r + (-other).
func (r RelativeDelta) Sub(other RelativeDelta) RelativeDelta {
	return r.Add(other.Negate())
}

// Negate flips the sign of every relative field; absolute fields pass
// through unchanged (there is no well-defined "negative" absolute field).
func (r RelativeDelta) Negate() RelativeDelta {
	out := r
	out.years, out.months, out.days = -r.years, -r.months, -r.days
	out.hours, out.minutes, out.seconds, out.microseconds = -r.hours, -r.minutes, -r.seconds, -r.microseconds
	out.leapdays = -r.leapdays
	out.fix()
	return out
}

// MulInt scales relative fields only.
func (r RelativeDelta) MulInt(n int) RelativeDelta {
	out := r
	out.years, out.months, out.days = r.years*n, r.months*n, r.days*n
	out.hours, out.minutes, out.seconds, out.microseconds = r.hours*n, r.minutes*n, r.seconds*n, r.microseconds*n
	out.leapdays = r.leapdays * n
	out.fix()
	return out
}

// Apply computes the six-step algorithm of spec.md §4.4 and returns the
// resulting time, or an error if the month arithmetic goes out of range.
func (r RelativeDelta) Apply(dt time.Time) (time.Time, error) {
	year := dt.Year()
	if r.year != nil {
		year = *r.year
	}
	year += r.years

	month := int(dt.Month())
	if r.month != nil {
		month = *r.month
	}
	if r.months != 0 {
		if abs(r.months) < 1 || abs(r.months) > 12 {
			return time.Time{}, epocherr.New("RelativeDelta.Apply", epocherr.ErrInvalidArgument, r.months)
		}
		month += r.months
		if month > 12 {
			year++
			month -= 12
		} else if month < 1 {
			year--
			month += 12
		}
	}

	day := dt.Day()
	if r.day != nil {
		day = *r.day
	}
	if dim := daysInMonth(year, month); day > dim {
		day = dim
	}

	days := r.days
	if r.leapdays != 0 && month > 2 && isLeap(year) {
		days += r.leapdays
	}

	hour, minute, second, microsecond := dt.Hour(), dt.Minute(), dt.Second(), dt.Nanosecond()/1000
	if r.hour != nil {
		hour = *r.hour
	}
	if r.minute != nil {
		minute = *r.minute
	}
	if r.second != nil {
		second = *r.second
	}
	if r.microsecond != nil {
		microsecond = *r.microsecond
	}

	ret := time.Date(year, time.Month(month), day, hour, minute, second, microsecond*1000, dt.Location())
	ret = ret.AddDate(0, 0, days)
	ret = ret.Add(time.Duration(r.hours)*time.Hour +
		time.Duration(r.minutes)*time.Minute +
		time.Duration(r.seconds)*time.Second +
		time.Duration(r.microseconds)*time.Microsecond)

	if r.weekday != nil {
		wd := int(r.weekday.Day)
		n := r.weekday.n()
		jumpdays := (abs(n) - 1) * 7
		if n > 0 {
			jumpdays += pymod(7-int(ret.Weekday())+wd, 7)
		} else {
			jumpdays += pymod(int(ret.Weekday())-wd, 7)
			jumpdays *= -1
		}
		ret = ret.AddDate(0, 0, jumpdays)
	}

	return ret, nil
}
