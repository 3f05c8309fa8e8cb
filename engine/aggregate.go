package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/meenmo/epochlite/array"
	"github.com/meenmo/epochlite/internal/epocherr"
	"github.com/meenmo/epochlite/scalar"
)

// AggregateOp enumerates the reduction functions a GroupBy/Resample
// operator can apply to a bin's values, replacing a string-keyed dynamic
// dispatch table with an exhaustive, switchable type.
type AggregateOp int

const (
	OpSum AggregateOp = iota
	OpMean
	OpMin
	OpMax
	OpFirst
	OpLast
	OpCount
	OpApproxMedian
	OpProduct
	OpVariance
	OpStddev
)

// Apply reduces a to a single scalar under op. skipNulls/minCount follow
// the same null-handling convention as array.Array's own aggregates.
func Apply(op AggregateOp, a *array.Array, skipNulls bool, minCount int) (scalar.Scalar, error) {
	switch op {
	case OpSum:
		return a.Sum(skipNulls, minCount)
	case OpMean:
		return a.Mean(skipNulls, minCount)
	case OpMin:
		return a.Min(skipNulls)
	case OpMax:
		return a.Max(skipNulls)
	case OpFirst:
		return firstOrLast(a, true)
	case OpLast:
		return firstOrLast(a, false)
	case OpCount:
		return countNonNull(a), nil
	case OpApproxMedian:
		return approxMedian(a)
	case OpProduct:
		return product(a)
	case OpVariance:
		return variance(a, false)
	case OpStddev:
		return variance(a, true)
	default:
		return scalar.Scalar{}, epocherr.New("engine.Apply", epocherr.ErrInvalidArgument, op)
	}
}

func firstOrLast(a *array.Array, first bool) (scalar.Scalar, error) {
	n := a.Len()
	if first {
		for i := 0; i < n; i++ {
			if a.IsValid(i) {
				return a.At(i)
			}
		}
	} else {
		for i := n - 1; i >= 0; i-- {
			if a.IsValid(i) {
				return a.At(i)
			}
		}
	}
	return scalar.Null(a.DataType()), nil
}

func countNonNull(a *array.Array) scalar.Scalar {
	n := 0
	for i := 0; i < a.Len(); i++ {
		if a.IsValid(i) {
			n++
		}
	}
	single := array.NewInt64([]int64{int64(n)}, []bool{true})
	v, _ := single.At(0)
	return v
}

func floatValues(a *array.Array) []float64 {
	var out []float64
	for i := 0; i < a.Len(); i++ {
		if !a.IsValid(i) {
			continue
		}
		v, err := a.At(i)
		if err != nil {
			continue
		}
		f, ok := asFloatValue(v)
		if ok {
			out = append(out, f)
		}
	}
	return out
}

func asFloatValue(s scalar.Scalar) (float64, bool) {
	if s.IsNull() {
		return 0, false
	}
	if d, err := s.Decimal(); err == nil {
		f, _ := d.Float64()
		return f, true
	}
	var f float64
	n, err := fmt.Sscan(s.String(), &f)
	return f, err == nil && n == 1
}

func approxMedian(a *array.Array) (scalar.Scalar, error) {
	vals := floatValues(a)
	if len(vals) == 0 {
		return scalar.Null(a.DataType()), nil
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	var median float64
	if len(vals)%2 == 0 {
		median = (vals[mid-1] + vals[mid]) / 2
	} else {
		median = vals[mid]
	}
	single := array.NewFloat64([]float64{median}, []bool{true})
	return single.At(0)
}

func product(a *array.Array) (scalar.Scalar, error) {
	vals := floatValues(a)
	if len(vals) == 0 {
		return scalar.Null(a.DataType()), nil
	}
	p := 1.0
	for _, v := range vals {
		p *= v
	}
	single := array.NewFloat64([]float64{p}, []bool{true})
	return single.At(0)
}

// variance computes the sample variance (Bessel-corrected), or its square
// root when asStddev is true; null when fewer than 2 values are present.
func variance(a *array.Array, asStddev bool) (scalar.Scalar, error) {
	vals := floatValues(a)
	if len(vals) < 2 {
		return scalar.Null(a.DataType()), nil
	}
	var mean float64
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))
	var ss float64
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	result := ss / float64(len(vals)-1)
	if asStddev {
		result = math.Sqrt(result)
	}
	single := array.NewFloat64([]float64{result}, []bool{true})
	return single.At(0)
}
