package array

import (
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/meenmo/epochlite/internal/epocherr"
	"github.com/meenmo/epochlite/scalar"
)

// belowMinCount reports whether the number of non-null values observed
// falls short of minCount, in which case aggregates return null.
func belowMinCount(seen, minCount int) bool { return seen < minCount }

// Sum returns the sum of non-null float64/int64 values, null if no values
// or fewer than minCount values were seen.
func (a *Array) Sum(skipNulls bool, minCount int) (scalar.Scalar, error) {
	switch a.kind {
	case KindFloat64:
		src := a.arr.(*array.Float64)
		var sum float64
		seen := 0
		for i := 0; i < a.Len(); i++ {
			if src.IsNull(i) {
				if !skipNulls {
					return scalar.Null(a.dt), nil
				}
				continue
			}
			sum += src.Value(i)
			seen++
		}
		if belowMinCount(seen, minCount) || seen == 0 {
			return scalar.Null(a.dt), nil
		}
		return floatScalar(sum), nil
	case KindInt64:
		src := a.arr.(*array.Int64)
		var sum int64
		seen := 0
		for i := 0; i < a.Len(); i++ {
			if src.IsNull(i) {
				if !skipNulls {
					return scalar.Null(a.dt), nil
				}
				continue
			}
			sum += src.Value(i)
			seen++
		}
		if belowMinCount(seen, minCount) || seen == 0 {
			return scalar.Null(a.dt), nil
		}
		return intScalar(sum), nil
	default:
		return scalar.Scalar{}, epocherr.New("Array.Sum", epocherr.ErrTypeMismatch, a.dt)
	}
}

// Mean returns the arithmetic mean of non-null numeric values, null if
// fewer than minCount values were seen or the array is empty.
func (a *Array) Mean(skipNulls bool, minCount int) (scalar.Scalar, error) {
	switch a.kind {
	case KindFloat64, KindInt64:
		var sum float64
		seen := 0
		for i := 0; i < a.Len(); i++ {
			if a.arr.IsNull(i) {
				if !skipNulls {
					return scalar.Null(scalarFloat64Type), nil
				}
				continue
			}
			v, _ := a.At(i)
			f, _ := asFloat(v)
			sum += f
			seen++
		}
		if belowMinCount(seen, minCount) || seen == 0 {
			return scalar.Null(scalarFloat64Type), nil
		}
		return floatScalar(sum / float64(seen)), nil
	default:
		return scalar.Scalar{}, epocherr.New("Array.Mean", epocherr.ErrTypeMismatch, a.dt)
	}
}

// Min returns the smallest non-null value, null on an all-null or empty
// array.
func (a *Array) Min(skipNulls bool) (scalar.Scalar, error) {
	return a.extreme(skipNulls, true)
}

// Max returns the largest non-null value, null on an all-null or empty
// array.
func (a *Array) Max(skipNulls bool) (scalar.Scalar, error) {
	return a.extreme(skipNulls, false)
}

func (a *Array) extreme(skipNulls, wantMin bool) (scalar.Scalar, error) {
	best := -1
	for i := 0; i < a.Len(); i++ {
		if a.arr.IsNull(i) {
			if !skipNulls {
				return scalar.Null(a.dt), nil
			}
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		cmp := a.compareAt(i, best)
		if (wantMin && cmp < 0) || (!wantMin && cmp > 0) {
			best = i
		}
	}
	if best == -1 {
		return scalar.Null(a.dt), nil
	}
	return a.At(best)
}

// ArgMin returns the position of the smallest non-null value, -1 if none.
func (a *Array) ArgMin(skipNulls bool) int { return a.argExtreme(skipNulls, true) }

// ArgMax returns the position of the largest non-null value, -1 if none.
func (a *Array) ArgMax(skipNulls bool) int { return a.argExtreme(skipNulls, false) }

func (a *Array) argExtreme(skipNulls, wantMin bool) int {
	best := -1
	for i := 0; i < a.Len(); i++ {
		if a.arr.IsNull(i) {
			if !skipNulls {
				return -1
			}
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		cmp := a.compareAt(i, best)
		if (wantMin && cmp < 0) || (!wantMin && cmp > 0) {
			best = i
		}
	}
	return best
}

// Any reports whether any non-null boolean value is true; an all-null or
// empty array reports false.
func (a *Array) Any(skipNulls bool) (bool, error) {
	if a.kind != KindBoolean {
		return false, epocherr.New("Array.Any", epocherr.ErrTypeMismatch, a.dt)
	}
	src := a.arr.(*array.Boolean)
	for i := 0; i < a.Len(); i++ {
		if src.IsNull(i) {
			continue
		}
		if src.Value(i) {
			return true, nil
		}
	}
	return false, nil
}

// All reports whether every non-null boolean value is true; an all-null or
// empty array reports true.
func (a *Array) All(skipNulls bool) (bool, error) {
	if a.kind != KindBoolean {
		return false, epocherr.New("Array.All", epocherr.ErrTypeMismatch, a.dt)
	}
	src := a.arr.(*array.Boolean)
	for i := 0; i < a.Len(); i++ {
		if src.IsNull(i) {
			continue
		}
		if !src.Value(i) {
			return false, nil
		}
	}
	return true, nil
}

// Diff returns element[i] - element[i-periods], null for positions without
// a prior element to diff against.
func (a *Array) Diff(periods int) (*Array, error) {
	if a.kind != KindFloat64 && a.kind != KindInt64 {
		return nil, epocherr.New("Array.Diff", epocherr.ErrTypeMismatch, a.dt)
	}
	n := a.Len()
	if a.kind == KindFloat64 {
		src := a.arr.(*array.Float64)
		vals, valid := make([]float64, n), make([]bool, n)
		for i := 0; i < n; i++ {
			j := i - periods
			if j < 0 || j >= n || src.IsNull(i) || src.IsNull(j) {
				continue
			}
			vals[i], valid[i] = src.Value(i)-src.Value(j), true
		}
		return NewFloat64(vals, valid), nil
	}
	src := a.arr.(*array.Int64)
	vals, valid := make([]int64, n), make([]bool, n)
	for i := 0; i < n; i++ {
		j := i - periods
		if j < 0 || j >= n || src.IsNull(i) || src.IsNull(j) {
			continue
		}
		vals[i], valid[i] = src.Value(i)-src.Value(j), true
	}
	return NewInt64(vals, valid), nil
}

// Shift moves every value forward (periods > 0) or backward (periods < 0)
// by periods positions, filling vacated positions with null.
func (a *Array) Shift(periods int) (*Array, error) {
	n := a.Len()
	idx := make([]int, n)
	for i := 0; i < n; i++ {
		src := i - periods
		if src < 0 || src >= n {
			idx[i] = n // deliberately out of range; Take with boundsCheck=false nulls it
		} else {
			idx[i] = src
		}
	}
	return a.Take(idx, false)
}
