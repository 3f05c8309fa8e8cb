package calendar_test

import (
	"testing"
	"time"

	"github.com/meenmo/epochlite/calendar"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDefaultCalendarOffsetFollowing(t *testing.T) {
	got, err := calendar.Default().Offset(date(2008, 1, 7), 1, calendar.RollFollowing)
	if err != nil {
		t.Fatalf("Offset: %v", err)
	}
	if !got.Equal(date(2008, 1, 8)) {
		t.Fatalf("got %v, want 2008-01-08", got)
	}
}

func TestCustomCalendarSkipsHoliday(t *testing.T) {
	// MLK Day 2014-01-20.
	c, err := calendar.New(calendar.WeekdayMonFri, []time.Time{date(2014, 1, 20)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := c.Offset(date(2014, 1, 17), 1, calendar.RollFollowing)
	if err != nil {
		t.Fatalf("Offset: %v", err)
	}
	if !got.Equal(date(2014, 1, 21)) {
		t.Fatalf("got %v, want 2014-01-21", got)
	}
}

func TestCountDefaultCalendar(t *testing.T) {
	c := calendar.Default()
	if got := c.Count(date(2011, 1, 3), date(2011, 1, 7)); got != 4 {
		t.Fatalf("Count = %d, want 4", got)
	}
}

func TestCountMondayOnlyWeekmask(t *testing.T) {
	c, err := calendar.New(calendar.NewWeekMask(time.Monday), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.Count(date(2011, 3, 1), date(2011, 4, 1)); got != 4 {
		t.Fatalf("Count = %d, want 4", got)
	}
}

func TestCountSignFlip(t *testing.T) {
	c := calendar.Default()
	a, b := date(2011, 1, 3), date(2011, 1, 7)
	if c.Count(a, b) != -c.Count(b, a) {
		t.Fatalf("count(a,b) should be -count(b,a) away from the shared boundary day")
	}
}

func TestOffsetThenCountRoundTrip(t *testing.T) {
	c := calendar.Default()
	d := date(2021, 6, 1) // Tuesday, business day
	for k := 0; k <= 10; k++ {
		next, err := c.Offset(d, k, calendar.RollFollowing)
		if err != nil {
			t.Fatalf("Offset: %v", err)
		}
		if got := c.Count(d, next); got != k {
			t.Fatalf("Count(d, Offset(d,%d)) = %d, want %d", k, got, k)
		}
	}
}

func TestInvalidWeekmaskRejected(t *testing.T) {
	var empty calendar.WeekMask
	if _, err := calendar.New(empty, nil); err == nil {
		t.Fatal("expected error for all-false weekmask")
	}
}

// TestUSFederalHolidayCalendarSkipsMLKDay pins spec §8 scenario 3 against
// the rickar/cal/v2-backed calendar (rather than a hand-built holiday
// list): 2014-01-17 + 1 business day skips MLK Day 2014-01-20 and lands
// on 2014-01-21.
func TestUSFederalHolidayCalendarSkipsMLKDay(t *testing.T) {
	ahc := calendar.USFederalHolidayCalendar()
	c, err := calendar.NewFromRickar(calendar.WeekdayMonFri, ahc, date(2014, 1, 1), date(2014, 2, 1))
	if err != nil {
		t.Fatalf("NewFromRickar: %v", err)
	}
	if c.IsBusday(date(2014, 1, 20)) {
		t.Fatal("2014-01-20 (MLK Day) should not be a business day")
	}
	got, err := c.Offset(date(2014, 1, 17), 1, calendar.RollFollowing)
	if err != nil {
		t.Fatalf("Offset: %v", err)
	}
	if !got.Equal(date(2014, 1, 21)) {
		t.Fatalf("got %v, want 2014-01-21", got)
	}
}

func TestRollNATReturnsZeroTime(t *testing.T) {
	c := calendar.Default()
	got, err := c.Offset(date(2021, 1, 2), 1, calendar.RollNAT) // Saturday
	if err != nil {
		t.Fatalf("Offset: %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("expected NAT sentinel, got %v", got)
	}
}
