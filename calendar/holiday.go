package calendar

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// AbstractHolidayCalendar materializes a sorted holiday list between two
// dates, the callable contract §6 names (e.g. "USFederalHolidayCalendar").
type AbstractHolidayCalendar interface {
	Name() string
	HolidaysBetween(start, end time.Time) []time.Time
}

// rickarHolidayCalendar adapts a github.com/rickar/cal/v2 Business calendar
// (the holiday library the retrieval pack's imarsman-datetime and
// jpfluger-alibs-slim modules depend on) to AbstractHolidayCalendar.
type rickarHolidayCalendar struct {
	name string
	cal  *cal.BusinessCalendar
}

func (r *rickarHolidayCalendar) Name() string { return r.name }

func (r *rickarHolidayCalendar) HolidaysBetween(start, end time.Time) []time.Time {
	var out []time.Time
	for d := truncateToDate(start); d.Before(end); d = d.AddDate(0, 0, 1) {
		if _, observed, _ := r.cal.IsHoliday(d); observed {
			out = append(out, d)
		}
	}
	return out
}

// USFederalHolidayCalendar is the canonical calendar named in §6.
func USFederalHolidayCalendar() AbstractHolidayCalendar {
	bc := cal.NewBusinessCalendar()
	bc.AddHoliday(us.Holidays...)
	return &rickarHolidayCalendar{name: "USFederalHolidayCalendar", cal: bc}
}

// NewFromRickar builds a BusinessDayCalendar by materializing an
// AbstractHolidayCalendar's holidays over [start, end) against mask.
func NewFromRickar(mask WeekMask, ahc AbstractHolidayCalendar, start, end time.Time) (*BusinessDayCalendar, error) {
	return New(mask, ahc.HolidaysBetween(start, end))
}
