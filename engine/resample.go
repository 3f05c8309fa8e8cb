package engine

import (
	"runtime"
	"sync"

	"github.com/meenmo/epochlite/array"
	"github.com/meenmo/epochlite/grouper"
	"github.com/meenmo/epochlite/index"
)

// Resample bins ts by g and applies op within each bin, producing one
// result per bin (including empty bins, whose result is null) — unlike
// GroupBy, which only ever emits groups that actually occurred.
func Resample(ts *index.DatetimeIndex, values *array.Array, g grouper.TimeGrouper, op AggregateOp, skipNulls bool, minCount int) (labels *index.Index, result *array.Array, err error) {
	bins, groupIDs, err := g.GenerateBins(ts)
	if err != nil {
		return nil, nil, err
	}
	byBin := make([][]int, len(bins))
	for i, gid := range groupIDs {
		if gid < 0 {
			continue
		}
		byBin[gid] = append(byBin[gid], i)
	}

	resultVals := make([]float64, len(bins))
	resultValid := make([]bool, len(bins))
	labelMicros := make([]int64, len(bins))
	labelValid := make([]bool, len(bins))
	tz := ts.Timezone()

	for i, positions := range byBin {
		labelMicros[i], labelValid[i] = array.TimeToTimestamp(bins[i].Label), true
		if len(positions) == 0 {
			continue
		}
		subset, err := values.Take(positions, true)
		if err != nil {
			return nil, nil, err
		}
		agg, err := Apply(op, subset, skipNulls, minCount)
		if err != nil {
			return nil, nil, err
		}
		if agg.IsNull() {
			continue
		}
		f, ok := asFloatValue(agg)
		resultVals[i], resultValid[i] = f, ok
	}

	labelArr := array.NewTimestamp(labelMicros, labelValid, tz)
	return index.Make(labelArr, ts.Name()), array.NewFloat64(resultVals, resultValid), nil
}

// DiffAcrossBins computes result[i] - result[i-periods] over a resampled
// series. Above config.ParallelThreshold total elements, the subtraction
// pass fans out across goroutines; below it, a single loop suffices. The
// choice is invisible to the caller — both paths produce identical output.
func DiffAcrossBins(result *array.Array, periods int) (*array.Array, error) {
	if result.Len() <= GetConfig().ParallelThreshold {
		return result.Diff(periods)
	}
	return parallelDiff(result, periods)
}

func parallelDiff(a *array.Array, periods int) (*array.Array, error) {
	n := a.Len()
	vals := make([]float64, n)
	valid := make([]bool, n)

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		stop := start + chunk
		if start >= n {
			break
		}
		if stop > n {
			stop = n
		}
		wg.Add(1)
		go func(start, stop int) {
			defer wg.Done()
			for i := start; i < stop; i++ {
				j := i - periods
				if j < 0 || j >= n || !a.IsValid(i) || !a.IsValid(j) {
					continue
				}
				vi, _ := a.At(i)
				vj, _ := a.At(j)
				fi, oki := asFloatValue(vi)
				fj, okj := asFloatValue(vj)
				if oki && okj {
					vals[i], valid[i] = fi-fj, true
				}
			}
		}(start, stop)
	}
	wg.Wait()
	return array.NewFloat64(vals, valid), nil
}
