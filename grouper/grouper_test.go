package grouper_test

import (
	"testing"
	"time"

	"github.com/meenmo/epochlite/array"
	"github.com/meenmo/epochlite/grouper"
	"github.com/meenmo/epochlite/index"
	"github.com/meenmo/epochlite/offset"
)

func ts(times ...time.Time) *index.DatetimeIndex {
	vals := make([]int64, len(times))
	valid := make([]bool, len(times))
	for i, t := range times {
		vals[i], valid[i] = array.TimeToTimestamp(t), true
	}
	ix := index.Make(array.NewTimestamp(vals, valid, ""), "ts")
	dt, _ := index.AsDatetimeIndex(ix)
	return dt
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDailyBinsCoverRange(t *testing.T) {
	idx := ts(day(2021, 1, 1), day(2021, 1, 2), day(2021, 1, 4))
	g := grouper.New(grouper.Options{Freq: offset.NewTick(offset.UnitDay, 1)})
	bins, groupIDs, err := g.GenerateBins(idx)
	if err != nil {
		t.Fatalf("GenerateBins: %v", err)
	}
	if len(bins) != 4 { // Jan 1,2,3,4
		t.Fatalf("len(bins) = %d, want 4", len(bins))
	}
	want := []int{0, 1, 3}
	for i, w := range want {
		if groupIDs[i] != w {
			t.Fatalf("groupIDs[%d] = %d, want %d", i, groupIDs[i], w)
		}
	}
}

func TestEachElementAssignedExactlyOneBin(t *testing.T) {
	idx := ts(day(2021, 1, 1), day(2021, 1, 1).Add(12*time.Hour), day(2021, 1, 2))
	g := grouper.New(grouper.Options{Freq: offset.NewTick(offset.UnitDay, 1)})
	_, groupIDs, err := g.GenerateBins(idx)
	if err != nil {
		t.Fatalf("GenerateBins: %v", err)
	}
	for i, id := range groupIDs {
		if id < 0 {
			t.Fatalf("element %d not assigned to any bin", i)
		}
	}
}

func TestSingleElementProducesOneBin(t *testing.T) {
	idx := ts(day(2021, 6, 15))
	g := grouper.New(grouper.Options{Freq: offset.NewTick(offset.UnitDay, 1)})
	bins, groupIDs, err := g.GenerateBins(idx)
	if err != nil {
		t.Fatalf("GenerateBins: %v", err)
	}
	if len(bins) != 1 {
		t.Fatalf("len(bins) = %d, want 1", len(bins))
	}
	if groupIDs[0] != 0 {
		t.Fatalf("groupIDs[0] = %d, want 0", groupIDs[0])
	}
}

func minute(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

// TestClosedRightLabelRightPinsScenarioOne pins spec scenario 1: 14
// minute-spaced observations resampled to 5min, closed=Right, label=Right.
// The on-anchor first observation (00:00) must still get its own
// preceding bin edge, not be silently dropped.
func TestClosedRightLabelRightPinsScenarioOne(t *testing.T) {
	times := make([]time.Time, 14)
	for i := range times {
		times[i] = minute(2000, 1, 1, 0, 0).Add(time.Duration(i) * time.Minute)
	}
	idx := ts(times...)

	closed := grouper.ClosedRight
	label := grouper.LabelRight
	g := grouper.New(grouper.Options{
		Freq:   offset.NewTick(offset.UnitMinute, 5),
		Closed: &closed,
		Label:  &label,
	})
	bins, groupIDs, err := g.GenerateBins(idx)
	if err != nil {
		t.Fatalf("GenerateBins: %v", err)
	}
	if len(bins) != 4 {
		t.Fatalf("len(bins) = %d, want 4", len(bins))
	}
	wantLabels := []time.Time{
		minute(2000, 1, 1, 0, 0),
		minute(2000, 1, 1, 0, 5),
		minute(2000, 1, 1, 0, 10),
		minute(2000, 1, 1, 0, 15),
	}
	for i, want := range wantLabels {
		if !bins[i].Label.Equal(want) {
			t.Fatalf("bins[%d].Label = %v, want %v", i, bins[i].Label, want)
		}
	}
	wantGroups := []int{0, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 3, 3, 3}
	for i, want := range wantGroups {
		if groupIDs[i] != want {
			t.Fatalf("groupIDs[%d] = %d, want %d (value %d dropped or mis-binned)", i, groupIDs[i], want, i)
		}
	}
}

func TestEmptyIndexProducesNoBins(t *testing.T) {
	idx := ts()
	g := grouper.New(grouper.Options{Freq: offset.NewTick(offset.UnitDay, 1)})
	bins, groupIDs, err := g.GenerateBins(idx)
	if err != nil {
		t.Fatalf("GenerateBins: %v", err)
	}
	if bins != nil || groupIDs != nil {
		t.Fatalf("expected nil bins/groupIDs for an empty index")
	}
}
