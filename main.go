package main

import (
	"fmt"
	"os"
	"time"

	"github.com/meenmo/epochlite/array"
	"github.com/meenmo/epochlite/engine"
	"github.com/meenmo/epochlite/grouper"
	"github.com/meenmo/epochlite/index"
	"github.com/meenmo/epochlite/offset"
	"github.com/meenmo/epochlite/utils"
)

// main demonstrates the resample path end to end: a minute-spaced
// datetime index, a 5-minute Tick frequency closed/labeled on the right
// edge, and a mean aggregation over the resulting bins.
func main() {
	os.Exit(run())
}

func run() int {
	start := utils.DateParser("2000-01-01")

	const n = 14
	micros := make([]int64, n)
	valid := make([]bool, n)
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		micros[i] = array.TimeToTimestamp(start.Add(time.Duration(i) * time.Minute))
		valid[i] = true
		values[i] = float64(i)
	}

	tsArr := array.NewTimestamp(micros, valid, "")
	ts, err := index.AsDatetimeIndex(index.Make(tsArr, "ts"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "build index:", err)
		return 1
	}
	vals := array.NewFloat64(values, valid)

	freq := offset.NewTick(offset.UnitMinute, 5)
	closed := grouper.ClosedRight
	label := grouper.LabelRight
	g := grouper.New(grouper.Options{Freq: freq, Closed: &closed, Label: &label})

	labels, result, err := engine.Resample(ts, vals, g, engine.OpMean, true, 1)
	if err != nil {
		fmt.Fprintln(os.Stderr, "resample:", err)
		return 1
	}

	labelArr := labels.Array()
	for i := 0; i < labelArr.Len(); i++ {
		lbl, err := labelArr.At(i)
		if err != nil {
			fmt.Fprintln(os.Stderr, "label:", err)
			return 1
		}
		mean, err := result.At(i)
		if err != nil {
			fmt.Fprintln(os.Stderr, "result:", err)
			return 1
		}
		fmt.Printf("%v -> %v\n", lbl, mean)
	}
	return 0
}
