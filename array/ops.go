package array

import (
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/meenmo/epochlite/internal/epocherr"
)

type binaryFloatOp func(a, b float64) float64
type binaryIntOp func(a, b int64) int64

func (a *Array) numericBinary(other *Array, ffn binaryFloatOp, ifn binaryIntOp, op string) (*Array, error) {
	if a.kind != other.kind {
		return nil, epocherr.New("Array."+op, epocherr.ErrTypeMismatch, other.dt)
	}
	if a.Len() != other.Len() {
		return nil, epocherr.New("Array."+op, epocherr.ErrInvalidArgument, other.Len())
	}
	n := a.Len()
	switch a.kind {
	case KindFloat64:
		x, y := a.arr.(*array.Float64), other.arr.(*array.Float64)
		vals, valid := make([]float64, n), make([]bool, n)
		for i := 0; i < n; i++ {
			if x.IsNull(i) || y.IsNull(i) {
				continue
			}
			vals[i], valid[i] = ffn(x.Value(i), y.Value(i)), true
		}
		return NewFloat64(vals, valid), nil
	case KindInt64:
		x, y := a.arr.(*array.Int64), other.arr.(*array.Int64)
		vals, valid := make([]int64, n), make([]bool, n)
		for i := 0; i < n; i++ {
			if x.IsNull(i) || y.IsNull(i) {
				continue
			}
			vals[i], valid[i] = ifn(x.Value(i), y.Value(i)), true
		}
		return NewInt64(vals, valid), nil
	default:
		return nil, epocherr.New("Array."+op, epocherr.ErrTypeMismatch, a.dt)
	}
}

func (a *Array) Add(other *Array) (*Array, error) {
	return a.numericBinary(other, func(x, y float64) float64 { return x + y }, func(x, y int64) int64 { return x + y }, "Add")
}
func (a *Array) Sub(other *Array) (*Array, error) {
	return a.numericBinary(other, func(x, y float64) float64 { return x - y }, func(x, y int64) int64 { return x - y }, "Sub")
}
func (a *Array) Mul(other *Array) (*Array, error) {
	return a.numericBinary(other, func(x, y float64) float64 { return x * y }, func(x, y int64) int64 { return x * y }, "Mul")
}
func (a *Array) Div(other *Array) (*Array, error) {
	return a.numericBinary(other, func(x, y float64) float64 {
		if y == 0 {
			return 0
		}
		return x / y
	}, func(x, y int64) int64 {
		if y == 0 {
			return 0
		}
		return x / y
	}, "Div")
}

type compareOp func(cmp int) bool

func (a *Array) comparison(other *Array, fn compareOp, op string) (*Array, error) {
	if a.kind != other.kind {
		return nil, epocherr.New("Array."+op, epocherr.ErrTypeMismatch, other.dt)
	}
	if a.Len() != other.Len() {
		return nil, epocherr.New("Array."+op, epocherr.ErrInvalidArgument, other.Len())
	}
	n := a.Len()
	vals, valid := make([]bool, n), make([]bool, n)
	for i := 0; i < n; i++ {
		if a.arr.IsNull(i) || other.arr.IsNull(i) {
			continue
		}
		vals[i], valid[i] = fn(pairwiseCompare(a, other, i)), true
	}
	return NewBoolean(vals, valid), nil
}

func pairwiseCompare(a, b *Array, i int) int {
	switch v := a.arr.(type) {
	case *array.Float64:
		w := b.arr.(*array.Float64)
		return floatCompare(v.Value(i), w.Value(i))
	case *array.Int64:
		w := b.arr.(*array.Int64)
		return intCompare(v.Value(i), w.Value(i))
	case *array.String:
		w := b.arr.(*array.String)
		return stringCompareRaw(v.Value(i), w.Value(i))
	case *array.Boolean:
		w := b.arr.(*array.Boolean)
		return boolCompare(v.Value(i), w.Value(i))
	case *array.Timestamp:
		w := b.arr.(*array.Timestamp)
		return int64Compare(int64(v.Value(i)), int64(w.Value(i)))
	default:
		return 0
	}
}

func (a *Array) Eq(other *Array) (*Array, error) {
	return a.comparison(other, func(c int) bool { return c == 0 }, "Eq")
}
func (a *Array) Ne(other *Array) (*Array, error) {
	return a.comparison(other, func(c int) bool { return c != 0 }, "Ne")
}
func (a *Array) Lt(other *Array) (*Array, error) {
	return a.comparison(other, func(c int) bool { return c < 0 }, "Lt")
}
func (a *Array) Le(other *Array) (*Array, error) {
	return a.comparison(other, func(c int) bool { return c <= 0 }, "Le")
}
func (a *Array) Gt(other *Array) (*Array, error) {
	return a.comparison(other, func(c int) bool { return c > 0 }, "Gt")
}
func (a *Array) Ge(other *Array) (*Array, error) {
	return a.comparison(other, func(c int) bool { return c >= 0 }, "Ge")
}

type booleanBinaryOp func(a, b bool) bool

func (a *Array) booleanBinary(other *Array, fn booleanBinaryOp, op string) (*Array, error) {
	if a.kind != KindBoolean || other.kind != KindBoolean {
		return nil, epocherr.New("Array."+op, epocherr.ErrTypeMismatch, a.dt)
	}
	if a.Len() != other.Len() {
		return nil, epocherr.New("Array."+op, epocherr.ErrInvalidArgument, other.Len())
	}
	n := a.Len()
	x, y := a.arr.(*array.Boolean), other.arr.(*array.Boolean)
	vals, valid := make([]bool, n), make([]bool, n)
	for i := 0; i < n; i++ {
		if x.IsNull(i) || y.IsNull(i) {
			continue
		}
		vals[i], valid[i] = fn(x.Value(i), y.Value(i)), true
	}
	return NewBoolean(vals, valid), nil
}

func (a *Array) And(other *Array) (*Array, error) {
	return a.booleanBinary(other, func(x, y bool) bool { return x && y }, "And")
}
func (a *Array) Or(other *Array) (*Array, error) {
	return a.booleanBinary(other, func(x, y bool) bool { return x || y }, "Or")
}
func (a *Array) Xor(other *Array) (*Array, error) {
	return a.booleanBinary(other, func(x, y bool) bool { return x != y }, "Xor")
}

// Not negates a boolean Array elementwise, preserving nulls.
func (a *Array) Not() (*Array, error) {
	if a.kind != KindBoolean {
		return nil, epocherr.New("Array.Not", epocherr.ErrTypeMismatch, a.dt)
	}
	src := a.arr.(*array.Boolean)
	n := a.Len()
	vals, valid := make([]bool, n), make([]bool, n)
	for i := 0; i < n; i++ {
		if src.IsNull(i) {
			continue
		}
		vals[i], valid[i] = !src.Value(i), true
	}
	return NewBoolean(vals, valid), nil
}
