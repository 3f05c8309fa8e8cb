package offset_test

import (
	"testing"
	"time"

	"github.com/meenmo/epochlite/calendar"
	"github.com/meenmo/epochlite/offset"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTickDayAdvances(t *testing.T) {
	tick := offset.NewTick(offset.UnitDay, 3)
	got, err := tick.Apply(date(2021, 1, 1))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !got.Equal(date(2021, 1, 4)) {
		t.Fatalf("got %v, want 2021-01-04", got)
	}
}

func TestTickNegateReverses(t *testing.T) {
	tick := offset.NewTick(offset.UnitDay, 3)
	back, _ := tick.Negate().Apply(date(2021, 1, 4))
	if !back.Equal(date(2021, 1, 1)) {
		t.Fatalf("got %v, want 2021-01-01", back)
	}
}

func TestWeekPlainStep(t *testing.T) {
	w := offset.NewWeek(1, nil)
	got, _ := w.Apply(date(2021, 1, 1))
	if !got.Equal(date(2021, 1, 8)) {
		t.Fatalf("got %v, want 2021-01-08", got)
	}
}

func TestWeekAnchoredToWeekday(t *testing.T) {
	fri := time.Friday
	w := offset.NewWeek(1, &fri)
	// 2021-01-01 is a Friday; one anchored step should land on the *next* Friday.
	got, _ := w.Apply(date(2021, 1, 1))
	if !got.Equal(date(2021, 1, 8)) {
		t.Fatalf("got %v, want 2021-01-08", got)
	}
	if got.Weekday() != time.Friday {
		t.Fatalf("got weekday %v, want Friday", got.Weekday())
	}
}

func TestMonthEndAnchor(t *testing.T) {
	m := offset.NewMonthOffset(1, offset.AnchorEnd)
	got, _ := m.Apply(date(2021, 1, 15))
	if !got.Equal(date(2021, 1, 31)) {
		t.Fatalf("got %v, want 2021-01-31 (completes current month first)", got)
	}
}

func TestMonthStartAnchorClampsDay(t *testing.T) {
	m := offset.NewMonthOffset(1, offset.AnchorStart)
	got, _ := m.Apply(date(2021, 1, 31))
	if !got.Equal(date(2021, 2, 1)) {
		t.Fatalf("got %v, want 2021-02-01", got)
	}
}

func TestQuarterOffsetIsOnOffset(t *testing.T) {
	q := offset.NewQuarterOffset(0, 1, offset.AnchorStart)
	if !q.IsOnOffset(date(2021, 4, 1)) {
		t.Fatal("2021-04-01 should be on a Jan-anchored quarter-start offset")
	}
	if q.IsOnOffset(date(2021, 5, 1)) {
		t.Fatal("2021-05-01 should not be on a Jan-anchored quarter-start offset")
	}
}

func TestYearOffsetAdvances(t *testing.T) {
	y := offset.NewYearOffset(1, time.January, offset.AnchorStart)
	got, _ := y.Apply(date(2021, 1, 1))
	if !got.Equal(date(2022, 1, 1)) {
		t.Fatalf("got %v, want 2022-01-01", got)
	}
}

func TestBusinessDaySkipsWeekend(t *testing.T) {
	b := offset.NewBusinessDay(1)
	got, err := b.Apply(date(2021, 1, 8)) // Friday
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !got.Equal(date(2021, 1, 11)) { // Monday
		t.Fatalf("got %v, want 2021-01-11", got)
	}
}

// TestCustomBusinessDaySkipsUSFederalHoliday pins spec §8 scenario 3
// through the CustomBusinessDay offset, backed by the rickar/cal/v2
// USFederalHolidayCalendar rather than a hand-built holiday list.
func TestCustomBusinessDaySkipsUSFederalHoliday(t *testing.T) {
	ahc := calendar.USFederalHolidayCalendar()
	cal, err := calendar.NewFromRickar(calendar.WeekdayMonFri, ahc, date(2014, 1, 1), date(2014, 2, 1))
	if err != nil {
		t.Fatalf("NewFromRickar: %v", err)
	}
	cbd := offset.NewCustomBusinessDay(1, cal)
	got, err := cbd.Apply(date(2014, 1, 17))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !got.Equal(date(2014, 1, 21)) { // skips MLK Day, 2014-01-20
		t.Fatalf("got %v, want 2014-01-21", got)
	}
}

func TestRollForwardRollBack(t *testing.T) {
	b := offset.NewBusinessDay(1)
	sat := date(2021, 1, 9)
	fwd, err := offset.RollForward(b, sat)
	if err != nil {
		t.Fatalf("RollForward: %v", err)
	}
	if !fwd.Equal(date(2021, 1, 11)) {
		t.Fatalf("RollForward(Saturday) = %v, want Monday", fwd)
	}
	back, err := offset.RollBack(b, sat)
	if err != nil {
		t.Fatalf("RollBack: %v", err)
	}
	if !back.Equal(date(2021, 1, 8)) {
		t.Fatalf("RollBack(Saturday) = %v, want Friday", back)
	}
}

func TestAddArrayPropagatesPerElement(t *testing.T) {
	tick := offset.NewTick(offset.UnitDay, 1)
	in := []time.Time{date(2021, 1, 1), date(2021, 1, 2)}
	out, err := offset.AddArray(tick, in)
	if err != nil {
		t.Fatalf("AddArray: %v", err)
	}
	if !out[0].Equal(date(2021, 1, 2)) || !out[1].Equal(date(2021, 1, 3)) {
		t.Fatalf("got %v", out)
	}
}
