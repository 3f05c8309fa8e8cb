// Package calendar implements a weekmask + holiday-list business day
// calendar, generalizing the teacher's hand-rolled per-country holiday maps
// into the spec's BusinessDayCalendar contract.
package calendar

import (
	"sort"
	"time"

	"github.com/meenmo/epochlite/internal/epocherr"
)

// WeekMask flags which weekdays count as business days, Monday..Sunday.
type WeekMask [7]bool

// mondayIndex converts time.Weekday (Sunday=0) to a Monday=0 index.
func mondayIndex(w time.Weekday) int {
	return int((w + 6) % 7)
}

// NewWeekMask builds a WeekMask from a set of business weekdays.
func NewWeekMask(days ...time.Weekday) WeekMask {
	var m WeekMask
	for _, d := range days {
		m[mondayIndex(d)] = true
	}
	return m
}

// WeekdayMonFri is the standard Monday-Friday weekmask.
var WeekdayMonFri = NewWeekMask(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)

// RollMode selects the convention used to snap a non-business day onto a
// business day before advancing by n.
type RollMode int

const (
	RollRaise RollMode = iota
	RollFollowing
	RollPreceding
	RollModifiedFollowing
	RollModifiedPreceding
	RollNAT
)

// BusinessDayCalendar is an immutable weekmask plus a canonicalized holiday
// list: sorted ascending, de-duplicated, retaining only entries whose
// weekday is in the weekmask.
type BusinessDayCalendar struct {
	weekmask          WeekMask
	holidays          []time.Time // sorted, deduped, weekmask-filtered
	busdaysInWeekmask int
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func normalizeHolidays(holidays []time.Time, mask WeekMask) []time.Time {
	out := make([]time.Time, 0, len(holidays))
	seen := make(map[time.Time]struct{}, len(holidays))
	for _, h := range holidays {
		h = truncateToDate(h)
		if !mask[mondayIndex(h.Weekday())] {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// New constructs a BusinessDayCalendar. It fails if the weekmask admits no
// business days at all.
func New(mask WeekMask, holidays []time.Time) (*BusinessDayCalendar, error) {
	count := 0
	for _, b := range mask {
		if b {
			count++
		}
	}
	if count == 0 {
		return nil, epocherr.New("calendar.New", epocherr.ErrInvalidArgument, mask)
	}
	return &BusinessDayCalendar{
		weekmask:          mask,
		holidays:          normalizeHolidays(holidays, mask),
		busdaysInWeekmask: count,
	}, nil
}

// defaultCalendar is the process-wide M-F, no-holidays singleton,
// initialized on first use.
var defaultCalendar *BusinessDayCalendar

// Default returns the M-F, no-holidays calendar singleton.
func Default() *BusinessDayCalendar {
	if defaultCalendar == nil {
		defaultCalendar, _ = New(WeekdayMonFri, nil)
	}
	return defaultCalendar
}

func (c *BusinessDayCalendar) Weekmask() WeekMask     { return c.weekmask }
func (c *BusinessDayCalendar) Holidays() []time.Time  { return c.holidays }
func (c *BusinessDayCalendar) BusdaysInWeekmask() int { return c.busdaysInWeekmask }

func (c *BusinessDayCalendar) isHoliday(d time.Time) bool {
	d = truncateToDate(d)
	n := len(c.holidays)
	i := sort.Search(n, func(i int) bool { return !c.holidays[i].Before(d) })
	return i < n && c.holidays[i].Equal(d)
}

// IsBusday reports weekmask[weekday] && !holiday(date), O(log H).
func (c *BusinessDayCalendar) IsBusday(t time.Time) bool {
	t = truncateToDate(t)
	if !c.weekmask[mondayIndex(t.Weekday())] {
		return false
	}
	return !c.isHoliday(t)
}

// SearchLimit bounds how many calendar days nextBusday/prevBusday and the
// Offset residue walk will step before giving up, guarding against an
// unbounded scan over a pathological near-all-holiday weekmask. Overridden
// by engine.SetConfig's BusinessDaySearchLimit.
var SearchLimit = 10_000

func (c *BusinessDayCalendar) nextBusday(t time.Time) (time.Time, error) {
	t = t.AddDate(0, 0, 1)
	for steps := 0; !c.IsBusday(t); steps++ {
		if steps >= SearchLimit {
			return time.Time{}, epocherr.New("calendar.Offset", epocherr.ErrOverflow, t)
		}
		t = t.AddDate(0, 0, 1)
	}
	return t, nil
}

func (c *BusinessDayCalendar) prevBusday(t time.Time) (time.Time, error) {
	t = t.AddDate(0, 0, -1)
	for steps := 0; !c.IsBusday(t); steps++ {
		if steps >= SearchLimit {
			return time.Time{}, epocherr.New("calendar.Offset", epocherr.ErrOverflow, t)
		}
		t = t.AddDate(0, 0, -1)
	}
	return t, nil
}

// snap applies roll to t if t is not a business day; onNAT reports whether
// the NAT sentinel (zero Time) was returned.
func (c *BusinessDayCalendar) snap(t time.Time, roll RollMode) (result time.Time, onNAT bool, err error) {
	t = truncateToDate(t)
	if c.IsBusday(t) {
		return t, false, nil
	}
	switch roll {
	case RollRaise:
		return time.Time{}, false, epocherr.New("calendar.Offset", epocherr.ErrInvalidArgument, t)
	case RollNAT:
		return time.Time{}, true, nil
	case RollFollowing:
		snapped, err := c.nextBusday(t.AddDate(0, 0, -1))
		return snapped, false, err
	case RollPreceding:
		snapped, err := c.prevBusday(t.AddDate(0, 0, 1))
		return snapped, false, err
	case RollModifiedFollowing:
		snapped, err := c.nextBusday(t.AddDate(0, 0, -1))
		if err != nil {
			return time.Time{}, false, err
		}
		if snapped.Month() != t.Month() {
			snapped, err = c.prevBusday(t.AddDate(0, 0, 1))
			if err != nil {
				return time.Time{}, false, err
			}
		}
		return snapped, false, nil
	case RollModifiedPreceding:
		snapped, err := c.prevBusday(t.AddDate(0, 0, 1))
		if err != nil {
			return time.Time{}, false, err
		}
		if snapped.Month() != t.Month() {
			snapped, err = c.nextBusday(t.AddDate(0, 0, -1))
			if err != nil {
				return time.Time{}, false, err
			}
		}
		return snapped, false, nil
	default:
		return time.Time{}, false, epocherr.New("calendar.Offset", epocherr.ErrInvalidArgument, roll)
	}
}

// Offset snaps date onto a business day per roll, then advances n business
// days. A whole-week stride is taken first using busdaysInWeekmask; each
// holiday inside the strided span adds one day to the residue, and the
// residue is stepped day by day over the mask and holiday list.
func (c *BusinessDayCalendar) Offset(date time.Time, n int, roll RollMode) (time.Time, error) {
	d, isNAT, err := c.snap(date, roll)
	if err != nil {
		return time.Time{}, err
	}
	if isNAT {
		return time.Time{}, nil
	}

	weeks := n / c.busdaysInWeekmask
	residue := n % c.busdaysInWeekmask
	lo := d
	d = d.AddDate(0, 0, weeks*7)
	hi := d
	if hi.Before(lo) {
		lo, hi = hi, lo
	}
	skipped := sort.Search(len(c.holidays), func(i int) bool { return c.holidays[i].After(hi) }) -
		sort.Search(len(c.holidays), func(i int) bool { return !c.holidays[i].Before(lo) })
	if n < 0 {
		skipped = -skipped
	}
	residue += skipped

	step := 1
	if residue < 0 {
		step = -1
	}
	for steps := 0; residue != 0; steps++ {
		if steps >= SearchLimit {
			return time.Time{}, epocherr.New("calendar.Offset", epocherr.ErrOverflow, n)
		}
		d = d.AddDate(0, 0, step)
		if c.IsBusday(d) {
			residue -= step
		}
	}
	return d, nil
}

// Count returns the number of business days in the half-open interval
// [begin, end); negative if end < begin.
func (c *BusinessDayCalendar) Count(begin, end time.Time) int {
	begin, end = truncateToDate(begin), truncateToDate(end)
	if begin.Equal(end) {
		return 0
	}
	sign := 1
	lo, hi := begin, end
	if end.Before(begin) {
		sign = -1
		lo, hi = end, begin
	}
	count := 0
	for d := lo; d.Before(hi); d = d.AddDate(0, 0, 1) {
		if c.IsBusday(d) {
			count++
		}
	}
	return sign * count
}
