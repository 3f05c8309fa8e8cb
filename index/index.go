// Package index implements the label axis: a typed, possibly-ordered
// sequence of row labels with O(1) (hash) or O(log n) (binary search when
// monotonic) lookup, set algebra, and row operations.
package index

import (
	"fmt"
	"sort"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/google/uuid"

	"github.com/meenmo/epochlite/array"
	"github.com/meenmo/epochlite/internal/epocherr"
	"github.com/meenmo/epochlite/scalar"
)

// Monotonicity is precomputed once at construction, never re-derived on
// every lookup.
type Monotonicity int

const (
	NotMonotonic Monotonicity = iota
	Increasing
	Decreasing
)

// Index is an ordered label axis backed by a typed Array.
type Index struct {
	arr          *array.Array
	name         string
	mono         Monotonicity
	posByLabel   map[string][]int
	duplicatesOK bool
}

// Make builds an Index over arr, precomputing monotonicity and the
// label→position lookup table.
func Make(arr *array.Array, name string) *Index {
	idx := &Index{arr: arr, name: name, posByLabel: make(map[string][]int, arr.Len())}
	idx.mono = computeMonotonicity(arr)
	for i := 0; i < arr.Len(); i++ {
		key := labelKey(arr, i)
		idx.posByLabel[key] = append(idx.posByLabel[key], i)
		if len(idx.posByLabel[key]) > 1 {
			idx.duplicatesOK = true
		}
	}
	return idx
}

func labelKey(a *array.Array, i int) string {
	if a.IsNullAt(i) {
		return "\x00null"
	}
	v, _ := a.At(i)
	return v.String()
}

func computeMonotonicity(a *array.Array) Monotonicity {
	n := a.Len()
	if n < 2 {
		return Increasing
	}
	inc, dec := true, true
	for i := 1; i < n; i++ {
		if a.IsNullAt(i-1) || a.IsNullAt(i) {
			return NotMonotonic
		}
		c := a.CompareAt(i-1, i)
		if c > 0 {
			inc = false
		}
		if c < 0 {
			dec = false
		}
		if !inc && !dec {
			return NotMonotonic
		}
	}
	if inc {
		return Increasing
	}
	if dec {
		return Decreasing
	}
	return NotMonotonic
}

func (ix *Index) Len() int                  { return ix.arr.Len() }
func (ix *Index) Empty() bool                { return ix.arr.Len() == 0 }
func (ix *Index) DataType() arrow.DataType   { return ix.arr.DataType() }
func (ix *Index) Name() string               { return ix.name }
func (ix *Index) Monotonic() Monotonicity    { return ix.mono }
func (ix *Index) Array() *array.Array        { return ix.arr }
func (ix *Index) HasDuplicates() bool        { return ix.duplicatesOK }

// InferredType mirrors pandas' inferred_type string for the Arrow type this
// index wraps.
func (ix *Index) InferredType() string {
	switch ix.arr.Kind() {
	case array.KindFloat64:
		return "floating"
	case array.KindInt64:
		return "integer"
	case array.KindString:
		return "string"
	case array.KindBoolean:
		return "boolean"
	case array.KindTimestamp:
		return "datetime64"
	default:
		return "mixed"
	}
}

// Is reports pointer identity (same Index value, not just equal content).
func (ix *Index) Is(other *Index) bool { return ix == other }

// Identical reports equal content, dtype, AND name.
func (ix *Index) Identical(other *Index) bool {
	if ix.name != other.name {
		return false
	}
	eq, err := ix.Equals(other)
	return err == nil && eq
}

// Equals reports equal content (labels and order), ignoring name.
func (ix *Index) Equals(other *Index) (bool, error) {
	if ix.Len() != other.Len() {
		return false, nil
	}
	for i := 0; i < ix.Len(); i++ {
		a, err := ix.arr.At(i)
		if err != nil {
			return false, err
		}
		b, err := other.arr.At(i)
		if err != nil {
			return false, err
		}
		eq, err := a.Equal(b)
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

// Contains reports whether label appears anywhere in the index.
func (ix *Index) Contains(label scalar.Scalar) bool {
	if label.IsNull() {
		_, ok := ix.posByLabel["\x00null"]
		return ok
	}
	_, ok := ix.posByLabel[label.String()]
	return ok
}

// GetLoc returns the position of label. It fails with ErrKeyNotFound if
// absent and ErrUniquenessViolation if label occurs more than once (callers
// that want every match should use GetLocAll).
func (ix *Index) GetLoc(label scalar.Scalar) (int, error) {
	positions, err := ix.getLocAll(label)
	if err != nil {
		return 0, err
	}
	if len(positions) > 1 {
		return 0, epocherr.New("Index.GetLoc", epocherr.ErrUniquenessViolation, label.String())
	}
	return positions[0], nil
}

// GetLocAll returns every position matching label.
func (ix *Index) GetLocAll(label scalar.Scalar) ([]int, error) { return ix.getLocAll(label) }

func (ix *Index) getLocAll(label scalar.Scalar) ([]int, error) {
	key := "\x00null"
	if label.IsNotNull() {
		key = label.String()
	}
	positions, ok := ix.posByLabel[key]
	if !ok {
		return nil, epocherr.New("Index.GetLoc", epocherr.ErrKeyNotFound, key)
	}
	return positions, nil
}

// SliceLocs returns the half-open position range [lo, hi) covering labels
// in [start, stop]; requires a monotonic index.
func (ix *Index) SliceLocs(start, stop scalar.Scalar) (int, int, error) {
	if ix.mono == NotMonotonic {
		return 0, 0, epocherr.New("Index.SliceLocs", epocherr.ErrMonotonicityRequired, nil)
	}
	if ix.mono == Decreasing {
		// Descending axis: labels in [start, stop] run from the first label
		// not greater than stop up to the first label less than start.
		n := ix.Len()
		lo := sort.Search(n, func(i int) bool {
			v, _ := ix.arr.At(i)
			greater, _ := stop.Less(v)
			return !greater
		})
		hi := sort.Search(n, func(i int) bool {
			v, _ := ix.arr.At(i)
			less, _ := v.Less(start)
			return less
		})
		return lo, hi, nil
	}
	lo := ix.searchSorted(start, true)
	hi := ix.searchSorted(stop, false)
	return lo, hi, nil
}

// SearchSorted returns the insertion position for label that keeps the
// index sorted; requires a monotonic-increasing index. side "right" places
// label after equal entries; any other value places it before them.
func (ix *Index) SearchSorted(label scalar.Scalar, side string) (int, error) {
	if ix.mono != Increasing {
		return 0, epocherr.New("Index.SearchSorted", epocherr.ErrMonotonicityRequired, nil)
	}
	return ix.searchSorted(label, side != "right"), nil
}

// searchSorted assumes an Increasing index; left selects the first position
// not less than label, otherwise the first position greater than label.
func (ix *Index) searchSorted(label scalar.Scalar, left bool) int {
	n := ix.Len()
	return sort.Search(n, func(i int) bool {
		v, _ := ix.arr.At(i)
		if left {
			less, _ := v.Less(label)
			return !less
		}
		greater, _ := label.Less(v)
		return greater
	})
}

// Min returns the index's minimum label, respecting monotonicity as a
// shortcut when available.
func (ix *Index) Min() (scalar.Scalar, error) {
	switch ix.mono {
	case Increasing:
		return ix.arr.At(0)
	case Decreasing:
		return ix.arr.At(ix.Len() - 1)
	default:
		return ix.arr.Min(true)
	}
}

// Max returns the index's maximum label, respecting monotonicity as a
// shortcut when available.
func (ix *Index) Max() (scalar.Scalar, error) {
	switch ix.mono {
	case Increasing:
		return ix.arr.At(ix.Len() - 1)
	case Decreasing:
		return ix.arr.At(0)
	default:
		return ix.arr.Max(true)
	}
}

func (ix *Index) ArgMin() int { return ix.arr.ArgMin(true) }
func (ix *Index) ArgMax() int { return ix.arr.ArgMax(true) }

// Take gathers positions into a new Index, preserving name.
func (ix *Index) Take(positions []int) (*Index, error) {
	arr, err := ix.arr.Take(positions, true)
	if err != nil {
		return nil, err
	}
	return Make(arr, ix.name), nil
}

// Slice returns the [start, stop) sub-index.
func (ix *Index) Slice(start, stop *int, step int) (*Index, error) {
	arr, err := ix.arr.Slice(start, stop, step)
	if err != nil {
		return nil, err
	}
	return Make(arr, ix.name), nil
}

// Drop removes the given positions, preserving relative order.
func (ix *Index) Drop(positions []int) (*Index, error) {
	excluded := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		excluded[p] = struct{}{}
	}
	var keep []int
	for i := 0; i < ix.Len(); i++ {
		if _, skip := excluded[i]; !skip {
			keep = append(keep, i)
		}
	}
	return ix.Take(keep)
}

// Append concatenates other after ix.
func (ix *Index) Append(other *Index) (*Index, error) {
	return concatIndexes(ix, other)
}

func concatIndexes(a, b *Index) (*Index, error) {
	if a.arr.Kind() != b.arr.Kind() {
		return nil, epocherr.New("Index.Append", epocherr.ErrTypeMismatch, b.arr.DataType())
	}
	if a.arr.Kind() == array.KindTimestamp {
		micros := make([]int64, 0, a.Len()+b.Len())
		valid := make([]bool, 0, a.Len()+b.Len())
		for _, src := range []*array.Array{a.arr, b.arr} {
			for i := 0; i < src.Len(); i++ {
				us, ok := src.TimestampMicros(i)
				micros, valid = append(micros, us), append(valid, ok)
			}
		}
		return Make(array.NewTimestamp(micros, valid, a.arr.Timezone()), a.name), nil
	}
	// Materialize via scalar round-trip: simple and correct across the other
	// kinds, at the cost of a full copy (append is not a hot path for this index).
	vals := make([]scalar.Scalar, 0, a.Len()+b.Len())
	for i := 0; i < a.Len(); i++ {
		v, err := a.arr.At(i)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	for i := 0; i < b.Len(); i++ {
		v, err := b.arr.At(i)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	arr, err := scalarsToArray(vals, a.arr.Kind(), a.arr)
	if err != nil {
		return nil, err
	}
	return Make(arr, a.name), nil
}

func scalarsToArray(vals []scalar.Scalar, kind array.Kind, template *array.Array) (*array.Array, error) {
	switch kind {
	case array.KindFloat64:
		fv, valid := make([]float64, len(vals)), make([]bool, len(vals))
		for i, v := range vals {
			if v.IsNull() {
				continue
			}
			var f float64
			_, _ = fmt.Sscan(v.String(), &f)
			fv[i], valid[i] = f, true
		}
		return array.NewFloat64(fv, valid), nil
	case array.KindInt64:
		iv, valid := make([]int64, len(vals)), make([]bool, len(vals))
		for i, v := range vals {
			if v.IsNull() {
				continue
			}
			var n int64
			_, _ = fmt.Sscan(v.String(), &n)
			iv[i], valid[i] = n, true
		}
		return array.NewInt64(iv, valid), nil
	case array.KindString:
		sv, valid := make([]string, len(vals)), make([]bool, len(vals))
		for i, v := range vals {
			if v.IsNull() {
				continue
			}
			sv[i], valid[i] = v.String(), true
		}
		return array.NewString(sv, valid), nil
	case array.KindBoolean:
		bv, valid := make([]bool, len(vals)), make([]bool, len(vals))
		for i, v := range vals {
			if v.IsNull() {
				continue
			}
			bv[i], valid[i] = v.String() == "true", true
		}
		return array.NewBoolean(bv, valid), nil
	default:
		return nil, epocherr.New("index.scalarsToArray", epocherr.ErrTypeMismatch, template.DataType())
	}
}

// TableID is a stable identity assigned when an Index is packaged into a
// table, the way uuid.NewString() identifies a schema/table instance rather
// than any particular row.
type TableID string

// NewTableID mints a fresh identity for ToTable packaging.
func NewTableID() TableID { return TableID(uuid.NewString()) }
