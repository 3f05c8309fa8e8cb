package relativedelta_test

import (
	"testing"
	"time"

	"github.com/meenmo/epochlite/relativedelta"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthEndClamp(t *testing.T) {
	rd, err := relativedelta.New(relativedelta.Option{Months: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := rd.Apply(date(2023, 1, 31))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !got.Equal(date(2023, 2, 28)) {
		t.Fatalf("got %v", got)
	}

	got2, err := rd.Apply(date(2024, 1, 31))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !got2.Equal(date(2024, 2, 29)) {
		t.Fatalf("got %v", got2)
	}
}

// Pinned policy from spec.md §8 scenario 6: clamp day to Feb length first
// (29 in the 2024 leap year), then add 1 day.
func TestPinnedNormalizationOrder(t *testing.T) {
	rd, err := relativedelta.New(relativedelta.Option{Years: 1, Months: 1, Days: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := rd.Apply(date(2023, 1, 31))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !got.Equal(date(2024, 3, 1)) {
		t.Fatalf("got %v, want 2024-03-01", got)
	}
}

func TestDiffModeRoundTrip(t *testing.T) {
	dt1 := date(2023, 5, 17)
	dt2 := date(2021, 1, 3)
	rd, err := relativedelta.New(relativedelta.Option{DT1: &dt1, DT2: &dt2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := rd.Apply(dt2)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !got.Equal(dt1) {
		t.Fatalf("RelativeDelta(dt1,dt2)+dt2 = %v, want %v", got, dt1)
	}
}

func TestAddSubNegateRelativeOnly(t *testing.T) {
	rd, _ := relativedelta.New(relativedelta.Option{Days: 3, Hours: 2})
	d := date(2023, 6, 1)
	forward, _ := rd.Apply(d)
	back, _ := rd.Negate().Apply(forward)
	if !back.Equal(d) {
		t.Fatalf("d + r + (-r) = %v, want %v", back, d)
	}
}

func TestWeekdayAnchor(t *testing.T) {
	// 2023-06-01 is a Thursday. Next Monday (MO(+1)) should be 2023-06-05.
	rd, err := relativedelta.New(relativedelta.Option{
		WeekdayAnchor: &relativedelta.Weekday{Day: time.Monday, N: 1},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := rd.Apply(date(2023, 6, 1))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !got.Equal(date(2023, 6, 5)) {
		t.Fatalf("got %v, want 2023-06-05", got)
	}
}

func TestEaster(t *testing.T) {
	cases := map[int]time.Time{
		2010: date(2010, 4, 4),
		2011: date(2011, 4, 24),
		2009: date(2009, 4, 12),
	}
	for year, want := range cases {
		got := relativedelta.Easter(year)
		if !got.Equal(want) {
			t.Errorf("Easter(%d) = %v, want %v", year, got, want)
		}
	}
}

func TestZeroMonthsApplyDoesNotError(t *testing.T) {
	rd, err := relativedelta.New(relativedelta.Option{Months: 0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// months==0 is a no-op and must not error.
	if _, err := rd.Apply(date(2023, 1, 1)); err != nil {
		t.Fatalf("Apply with zero months should not error: %v", err)
	}
}
