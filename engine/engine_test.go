package engine_test

import (
	"testing"
	"time"

	"github.com/meenmo/epochlite/array"
	"github.com/meenmo/epochlite/engine"
	"github.com/meenmo/epochlite/grouper"
	"github.com/meenmo/epochlite/index"
	"github.com/meenmo/epochlite/offset"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func f64Index(vals []string, name string) *index.Index {
	valid := make([]bool, len(vals))
	for i := range valid {
		valid[i] = true
	}
	return index.Make(array.NewString(vals, valid), name)
}

func TestGroupBySum(t *testing.T) {
	keys := f64Index([]string{"a", "b", "a", "b"}, "k")
	values := array.NewFloat64([]float64{1, 2, 3, 4}, []bool{true, true, true, true})
	resultKeys, resultVals, err := engine.GroupBy(keys, values, engine.OpSum, true, 0)
	if err != nil {
		t.Fatalf("GroupBy: %v", err)
	}
	if resultKeys.Len() != 2 {
		t.Fatalf("Len = %d, want 2", resultKeys.Len())
	}
	v0, _ := resultVals.At(0)
	if v0.String() != "4" { // a: 1+3
		t.Fatalf("group a sum = %v, want 4", v0)
	}
	v1, _ := resultVals.At(1)
	if v1.String() != "6" { // b: 2+4
		t.Fatalf("group b sum = %v, want 6", v1)
	}
}

func TestGroupByMean(t *testing.T) {
	keys := f64Index([]string{"a", "a"}, "k")
	values := array.NewFloat64([]float64{2, 4}, []bool{true, true})
	_, resultVals, err := engine.GroupBy(keys, values, engine.OpMean, true, 0)
	if err != nil {
		t.Fatalf("GroupBy: %v", err)
	}
	v0, _ := resultVals.At(0)
	if v0.String() != "3" {
		t.Fatalf("mean = %v, want 3", v0)
	}
}

func buildTsIndex(times ...time.Time) *index.DatetimeIndex {
	vals := make([]int64, len(times))
	valid := make([]bool, len(times))
	for i, tm := range times {
		vals[i], valid[i] = array.TimeToTimestamp(tm), true
	}
	ix := index.Make(array.NewTimestamp(vals, valid, ""), "ts")
	dt, _ := index.AsDatetimeIndex(ix)
	return dt
}

func TestResampleIncludesEmptyBinsAsNull(t *testing.T) {
	ts := buildTsIndex(day(2021, 1, 1), day(2021, 1, 3))
	values := array.NewFloat64([]float64{10, 30}, []bool{true, true})
	g := grouper.New(grouper.Options{Freq: offset.NewTick(offset.UnitDay, 1)})
	labels, result, err := engine.Resample(ts, values, g, engine.OpSum, true, 0)
	if err != nil {
		t.Fatalf("Resample: %v", err)
	}
	if labels.Len() != 3 { // Jan 1, 2, 3
		t.Fatalf("Len = %d, want 3", labels.Len())
	}
	if result.IsValid(1) {
		t.Fatal("Jan 2 bin should be null (no observations)")
	}
}

// TestResampleClosedRightLabelRightScenarioOne pins spec §8 scenario 1
// end to end through the resample/aggregate path: 14 one-minute
// observations (values 0..13), 5min mean, closed=Right, label=Right.
func TestResampleClosedRightLabelRightScenarioOne(t *testing.T) {
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	times := make([]time.Time, 14)
	values := make([]float64, 14)
	valid := make([]bool, 14)
	for i := range times {
		times[i] = start.Add(time.Duration(i) * time.Minute)
		values[i] = float64(i)
		valid[i] = true
	}
	ts := buildTsIndex(times...)
	vals := array.NewFloat64(values, valid)

	closed := grouper.ClosedRight
	label := grouper.LabelRight
	g := grouper.New(grouper.Options{
		Freq:   offset.NewTick(offset.UnitMinute, 5),
		Closed: &closed,
		Label:  &label,
	})

	labels, result, err := engine.Resample(ts, vals, g, engine.OpMean, true, 1)
	if err != nil {
		t.Fatalf("Resample: %v", err)
	}
	if labels.Len() != 4 {
		t.Fatalf("labels.Len() = %d, want 4", labels.Len())
	}
	wantLabelMicros := []int64{
		array.TimeToTimestamp(start),
		array.TimeToTimestamp(start.Add(5 * time.Minute)),
		array.TimeToTimestamp(start.Add(10 * time.Minute)),
		array.TimeToTimestamp(start.Add(15 * time.Minute)),
	}
	for i, want := range wantLabelMicros {
		got, ok := labels.Array().TimestampMicros(i)
		if !ok || got != want {
			t.Fatalf("label[%d] = %v (valid=%v), want %v", i, got, ok, want)
		}
	}
	wantMeans := []string{"0", "3", "8", "12"}
	for i, want := range wantMeans {
		v, err := result.At(i)
		if err != nil {
			t.Fatalf("result.At(%d): %v", i, err)
		}
		if v.String() != want {
			t.Fatalf("mean[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestDiffAcrossBinsMatchesSequential(t *testing.T) {
	a := array.NewFloat64([]float64{1, 3, 6, 10}, []bool{true, true, true, true})
	engine.SetConfig(engine.Config{ParallelThreshold: 0, BusinessDaySearchLimit: 1000})
	defer engine.SetConfig(engine.DefaultConfig)
	got, err := engine.DiffAcrossBins(a, 1)
	if err != nil {
		t.Fatalf("DiffAcrossBins: %v", err)
	}
	want := []string{"", "2", "3", "4"}
	for i := 1; i < a.Len(); i++ {
		v, _ := got.At(i)
		if v.String() != want[i] {
			t.Fatalf("position %d = %v, want %v", i, v, want[i])
		}
	}
}
