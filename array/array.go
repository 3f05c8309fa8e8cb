// Package array implements the engine's Array façade: a thin wrapper over
// an Arrow array that normalizes negative indexing, Python-style slicing,
// null-aware aggregates, and set-style operations.
//
// The façade supports the five column kinds the engine's own operators
// exercise (float64, int64, utf8, boolean, timestamp); every other Arrow
// type flows through the columnar runtime directly and is out of scope for
// this wrapper, the same way the teacher's curve/schedule code only ever
// touches time.Time and float64 columns.
package array

import (
	"sort"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/meenmo/epochlite/internal/epocherr"
	"github.com/meenmo/epochlite/scalar"
)

// Kind tags which native representation an Array holds.
type Kind int

const (
	KindFloat64 Kind = iota
	KindInt64
	KindString
	KindBoolean
	KindTimestamp
)

// Array is an ordered, possibly null-bearing sequence of values of one
// declared type, backed by an arrow.Array.
type Array struct {
	kind Kind
	dt   arrow.DataType
	arr  arrow.Array
}

var defaultAllocator = memory.NewGoAllocator()

func resolveIndex(i, length int) (int, error) {
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, epocherr.New("Array.At", epocherr.ErrOutOfRange, i)
	}
	return i, nil
}

// NewFloat64 builds a float64 Array; valid[i] == false marks a null.
func NewFloat64(values []float64, valid []bool) *Array {
	b := array.NewFloat64Builder(defaultAllocator)
	defer b.Release()
	b.AppendValues(values, valid)
	arr := b.NewFloat64Array()
	return &Array{kind: KindFloat64, dt: arrow.PrimitiveTypes.Float64, arr: arr}
}

// NewInt64 builds an int64 Array; valid[i] == false marks a null.
func NewInt64(values []int64, valid []bool) *Array {
	b := array.NewInt64Builder(defaultAllocator)
	defer b.Release()
	b.AppendValues(values, valid)
	arr := b.NewInt64Array()
	return &Array{kind: KindInt64, dt: arrow.PrimitiveTypes.Int64, arr: arr}
}

// NewString builds a utf8 Array; valid[i] == false marks a null.
func NewString(values []string, valid []bool) *Array {
	b := array.NewStringBuilder(defaultAllocator)
	defer b.Release()
	b.AppendValues(values, valid)
	arr := b.NewStringArray()
	return &Array{kind: KindString, dt: arrow.BinaryTypes.String, arr: arr}
}

// NewBoolean builds a boolean Array; valid[i] == false marks a null.
func NewBoolean(values []bool, valid []bool) *Array {
	b := array.NewBooleanBuilder(defaultAllocator)
	defer b.Release()
	b.AppendValues(values, valid)
	arr := b.NewBooleanArray()
	return &Array{kind: KindBoolean, dt: arrow.FixedWidthTypes.Boolean, arr: arr}
}

// NewTimestamp builds a timestamp[us] Array, optionally carrying an IANA
// zone; values are microseconds since the Unix epoch.
func NewTimestamp(values []int64, valid []bool, tz string) *Array {
	dt := &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: tz}
	b := array.NewTimestampBuilder(defaultAllocator, dt)
	defer b.Release()
	ts := make([]arrow.Timestamp, len(values))
	for i, v := range values {
		ts[i] = arrow.Timestamp(v)
	}
	b.AppendValues(ts, valid)
	arr := b.NewTimestampArray()
	return &Array{kind: KindTimestamp, dt: dt, arr: arr}
}

// FromArrow wraps a pre-built Arrow array of a supported kind.
func FromArrow(a arrow.Array) (*Array, error) {
	switch v := a.(type) {
	case *array.Float64:
		return &Array{kind: KindFloat64, dt: v.DataType(), arr: v}, nil
	case *array.Int64:
		return &Array{kind: KindInt64, dt: v.DataType(), arr: v}, nil
	case *array.String:
		return &Array{kind: KindString, dt: v.DataType(), arr: v}, nil
	case *array.Boolean:
		return &Array{kind: KindBoolean, dt: v.DataType(), arr: v}, nil
	case *array.Timestamp:
		return &Array{kind: KindTimestamp, dt: v.DataType(), arr: v}, nil
	default:
		return nil, epocherr.New("array.FromArrow", epocherr.ErrTypeMismatch, a.DataType())
	}
}

func (a *Array) Len() int              { return a.arr.Len() }
func (a *Array) NullN() int            { return a.arr.NullN() }
func (a *Array) DataType() arrow.DataType { return a.dt }
func (a *Array) Kind() Kind             { return a.kind }
func (a *Array) Raw() arrow.Array       { return a.arr }

// Timezone returns the IANA zone for a timestamp Array, or "" if naive.
func (a *Array) Timezone() string {
	if ts, ok := a.dt.(*arrow.TimestampType); ok {
		return ts.TimeZone
	}
	return ""
}

func (a *Array) IsValid(i int) bool { return a.arr.IsValid(i) }
func (a *Array) IsNullAt(i int) bool { return a.arr.IsNull(i) }

// TimestampMicros returns the raw microseconds-since-epoch at position i
// for a timestamp Array, and whether the position is non-null. Panics if
// called on a non-timestamp Array, the same contract array.At's type
// switch enforces implicitly.
func (a *Array) TimestampMicros(i int) (int64, bool) {
	src := a.arr.(*array.Timestamp)
	if src.IsNull(i) {
		return 0, false
	}
	return int64(src.Value(i)), true
}

// IsNull returns a boolean Array flagging null positions.
func (a *Array) IsNull() *Array {
	out := make([]bool, a.Len())
	valid := make([]bool, a.Len())
	for i := range out {
		out[i] = a.arr.IsNull(i)
		valid[i] = true
	}
	return NewBoolean(out, valid)
}

// IsNotNull is the complement of IsNull.
func (a *Array) IsNotNull() *Array {
	out := make([]bool, a.Len())
	valid := make([]bool, a.Len())
	for i := range out {
		out[i] = a.arr.IsValid(i)
		valid[i] = true
	}
	return NewBoolean(out, valid)
}

// At returns the scalar at position i, resolving negative indices as
// length+i.
func (a *Array) At(i int) (scalar.Scalar, error) {
	i, err := resolveIndex(i, a.Len())
	if err != nil {
		return scalar.Scalar{}, err
	}
	if a.arr.IsNull(i) {
		return scalar.Null(a.dt), nil
	}
	switch v := a.arr.(type) {
	case *array.Float64:
		return floatScalar(v.Value(i)), nil
	case *array.Int64:
		return intScalar(v.Value(i)), nil
	case *array.String:
		return stringScalar(v.Value(i)), nil
	case *array.Boolean:
		return boolScalar(v.Value(i)), nil
	case *array.Timestamp:
		return tsScalar(v.Value(i), a.dt), nil
	default:
		return scalar.Scalar{}, epocherr.New("Array.At", epocherr.ErrTypeMismatch, a.dt)
	}
}

func canonicalSliceBounds(start, stop *int, length int) (int, int) {
	s, e := 0, length
	if start != nil {
		s = *start
		if s < 0 {
			s += length
		}
		if s < 0 {
			s = 0
		}
		if s > length {
			s = length
		}
	}
	if stop != nil {
		e = *stop
		if e < 0 {
			e += length
		}
		if e < 0 {
			e = 0
		}
		if e > length {
			e = length
		}
	}
	if e < s {
		e = s
	}
	return s, e
}

// Slice canonicalizes start/stop against length; when step == 1 it returns a
// contiguous, zero-copy view. Any other step materializes via a gather.
func (a *Array) Slice(start, stop *int, step int) (*Array, error) {
	if step == 0 {
		return nil, epocherr.New("Array.Slice", epocherr.ErrInvalidArgument, step)
	}
	s, e := canonicalSliceBounds(start, stop, a.Len())
	if step == 1 {
		view := array.NewSlice(a.arr, int64(s), int64(e))
		return FromArrow(view)
	}
	var idx []int
	if step > 0 {
		for i := s; i < e; i += step {
			idx = append(idx, i)
		}
	} else {
		for i := e - 1; i >= s; i += step {
			idx = append(idx, i)
		}
	}
	return a.Take(idx, true)
}

// Take gathers positions into a new Array. Negative indices are resolved;
// when boundsCheck is true, out-of-range positions fail, otherwise they
// yield null.
func (a *Array) Take(indices []int, boundsCheck bool) (*Array, error) {
	resolved := make([]int, len(indices))
	for i, idx := range indices {
		r, err := resolveIndex(idx, a.Len())
		if err != nil {
			if boundsCheck {
				return nil, err
			}
			r = -1
		}
		resolved[i] = r
	}
	switch a.kind {
	case KindFloat64:
		vals, valid := make([]float64, len(resolved)), make([]bool, len(resolved))
		src := a.arr.(*array.Float64)
		for i, r := range resolved {
			if r < 0 || src.IsNull(r) {
				continue
			}
			vals[i], valid[i] = src.Value(r), true
		}
		return NewFloat64(vals, valid), nil
	case KindInt64:
		vals, valid := make([]int64, len(resolved)), make([]bool, len(resolved))
		src := a.arr.(*array.Int64)
		for i, r := range resolved {
			if r < 0 || src.IsNull(r) {
				continue
			}
			vals[i], valid[i] = src.Value(r), true
		}
		return NewInt64(vals, valid), nil
	case KindString:
		vals, valid := make([]string, len(resolved)), make([]bool, len(resolved))
		src := a.arr.(*array.String)
		for i, r := range resolved {
			if r < 0 || src.IsNull(r) {
				continue
			}
			vals[i], valid[i] = src.Value(r), true
		}
		return NewString(vals, valid), nil
	case KindBoolean:
		vals, valid := make([]bool, len(resolved)), make([]bool, len(resolved))
		src := a.arr.(*array.Boolean)
		for i, r := range resolved {
			if r < 0 || src.IsNull(r) {
				continue
			}
			vals[i], valid[i] = src.Value(r), true
		}
		return NewBoolean(vals, valid), nil
	case KindTimestamp:
		vals, valid := make([]int64, len(resolved)), make([]bool, len(resolved))
		src := a.arr.(*array.Timestamp)
		for i, r := range resolved {
			if r < 0 || src.IsNull(r) {
				continue
			}
			vals[i], valid[i] = int64(src.Value(r)), true
		}
		return NewTimestamp(vals, valid, a.Timezone()), nil
	default:
		return nil, epocherr.New("Array.Take", epocherr.ErrTypeMismatch, a.dt)
	}
}

// Filter returns the elements where mask is true; mask must have the same
// length as a.
func (a *Array) Filter(mask *Array) (*Array, error) {
	if mask.kind != KindBoolean {
		return nil, epocherr.New("Array.Filter", epocherr.ErrTypeMismatch, mask.dt)
	}
	if mask.Len() != a.Len() {
		return nil, epocherr.New("Array.Filter", epocherr.ErrInvalidArgument, mask.Len())
	}
	maskArr := mask.arr.(*array.Boolean)
	var idx []int
	for i := 0; i < a.Len(); i++ {
		if maskArr.IsValid(i) && maskArr.Value(i) {
			idx = append(idx, i)
		}
	}
	return a.Take(idx, true)
}

// sortPermutation returns the index permutation that would sort the array.
func (a *Array) sortPermutation(ascending bool) []int {
	n := a.Len()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	less := func(i, j int) bool {
		pi, pj := idx[i], idx[j]
		ni, nj := a.arr.IsNull(pi), a.arr.IsNull(pj)
		if ni || nj {
			return !ni && nj // nulls sort last
		}
		cmp := a.compareAt(pi, pj)
		if ascending {
			return cmp < 0
		}
		return cmp > 0
	}
	sort.SliceStable(idx, less)
	return idx
}

// CompareAt returns -1/0/1 comparing the values at positions i and j;
// callers (e.g. the index package's monotonic binary search) must ensure
// neither position is null.
func (a *Array) CompareAt(i, j int) int { return a.compareAt(i, j) }

func (a *Array) compareAt(i, j int) int {
	switch v := a.arr.(type) {
	case *array.Float64:
		return floatCompare(v.Value(i), v.Value(j))
	case *array.Int64:
		return intCompare(v.Value(i), v.Value(j))
	case *array.String:
		return stringCompareRaw(v.Value(i), v.Value(j))
	case *array.Boolean:
		return boolCompare(v.Value(i), v.Value(j))
	case *array.Timestamp:
		return int64Compare(int64(v.Value(i)), int64(v.Value(j)))
	default:
		return 0
	}
}

func floatCompare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
func intCompare(a, b int64) int { return int64Compare(a, b) }
func int64Compare(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
func stringCompareRaw(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
func boolCompare(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}

// Sort returns a new Array reordered ascending or descending; nulls sort
// last regardless of direction.
func (a *Array) Sort(ascending bool) (*Array, error) {
	perm := a.sortPermutation(ascending)
	return a.Take(perm, true)
}

// Unique returns the distinct non-repeated values in first-seen order.
func (a *Array) Unique() (*Array, error) {
	seen := make(map[string]struct{})
	var idx []int
	for i := 0; i < a.Len(); i++ {
		key := a.keyAt(i)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		idx = append(idx, i)
	}
	return a.Take(idx, true)
}

func (a *Array) keyAt(i int) string {
	if a.arr.IsNull(i) {
		return "\x00null"
	}
	s, _ := a.At(i)
	return s.String()
}

// ValueCounts returns the distinct values and their occurrence counts, in
// first-seen order.
func (a *Array) ValueCounts() (values *Array, counts *Array, err error) {
	order := make([]string, 0)
	count := make(map[string]int64)
	first := make(map[string]int)
	for i := 0; i < a.Len(); i++ {
		key := a.keyAt(i)
		if _, ok := count[key]; !ok {
			order = append(order, key)
			first[key] = i
		}
		count[key]++
	}
	idx := make([]int, len(order))
	countVals := make([]int64, len(order))
	for i, key := range order {
		idx[i] = first[key]
		countVals[i] = count[key]
	}
	values, err = a.Take(idx, true)
	if err != nil {
		return nil, nil, err
	}
	valid := make([]bool, len(countVals))
	for i := range valid {
		valid[i] = true
	}
	counts = NewInt64(countVals, valid)
	return values, counts, nil
}

// IsIn reports, per element, whether it appears in set.
func (a *Array) IsIn(set *Array) (*Array, error) {
	members := make(map[string]struct{}, set.Len())
	for i := 0; i < set.Len(); i++ {
		if !set.arr.IsNull(i) {
			members[set.keyAt(i)] = struct{}{}
		}
	}
	out := make([]bool, a.Len())
	valid := make([]bool, a.Len())
	for i := 0; i < a.Len(); i++ {
		valid[i] = true
		if a.arr.IsNull(i) {
			continue
		}
		_, out[i] = members[a.keyAt(i)]
	}
	return NewBoolean(out, valid), nil
}

// IndexIn returns, per element, the position of its first match in set, or
// null if absent.
func (a *Array) IndexIn(set *Array) (*Array, error) {
	pos := make(map[string]int64, set.Len())
	for i := 0; i < set.Len(); i++ {
		if set.arr.IsNull(i) {
			continue
		}
		key := set.keyAt(i)
		if _, ok := pos[key]; !ok {
			pos[key] = int64(i)
		}
	}
	out := make([]int64, a.Len())
	valid := make([]bool, a.Len())
	for i := 0; i < a.Len(); i++ {
		if a.arr.IsNull(i) {
			continue
		}
		if p, ok := pos[a.keyAt(i)]; ok {
			out[i], valid[i] = p, true
		}
	}
	return NewInt64(out, valid), nil
}

// DictionaryEncode splits the array into integer codes and a dictionary of
// distinct values.
func (a *Array) DictionaryEncode() (indices *Array, dictionary *Array, err error) {
	dictionary, err = a.Unique()
	if err != nil {
		return nil, nil, err
	}
	pos := make(map[string]int64, dictionary.Len())
	for i := 0; i < dictionary.Len(); i++ {
		pos[dictionary.keyAt(i)] = int64(i)
	}
	codes := make([]int64, a.Len())
	valid := make([]bool, a.Len())
	for i := 0; i < a.Len(); i++ {
		if a.arr.IsNull(i) {
			continue
		}
		codes[i], valid[i] = pos[a.keyAt(i)], true
	}
	return NewInt64(codes, valid), dictionary, nil
}

// FillNull replaces null positions with the given scalar's value.
func (a *Array) FillNull(s scalar.Scalar) (*Array, error) {
	switch a.kind {
	case KindFloat64:
		f, ok := asFloat(s)
		if !ok {
			return nil, epocherr.New("Array.FillNull", epocherr.ErrTypeMismatch, s.DataType())
		}
		src := a.arr.(*array.Float64)
		vals, valid := make([]float64, a.Len()), make([]bool, a.Len())
		for i := 0; i < a.Len(); i++ {
			if src.IsNull(i) {
				vals[i], valid[i] = f, true
			} else {
				vals[i], valid[i] = src.Value(i), true
			}
		}
		return NewFloat64(vals, valid), nil
	case KindInt64:
		iv, ok := asInt(s)
		if !ok {
			return nil, epocherr.New("Array.FillNull", epocherr.ErrTypeMismatch, s.DataType())
		}
		src := a.arr.(*array.Int64)
		vals, valid := make([]int64, a.Len()), make([]bool, a.Len())
		for i := 0; i < a.Len(); i++ {
			if src.IsNull(i) {
				vals[i], valid[i] = iv, true
			} else {
				vals[i], valid[i] = src.Value(i), true
			}
		}
		return NewInt64(vals, valid), nil
	default:
		return nil, epocherr.New("Array.FillNull", epocherr.ErrTypeMismatch, a.dt)
	}
}

// Map applies f pointwise; when ignoreNulls is true, null positions pass
// through untouched instead of being presented to f.
func (a *Array) Map(f func(scalar.Scalar) scalar.Scalar, ignoreNulls bool) (*Array, error) {
	out := make([]scalar.Scalar, a.Len())
	for i := 0; i < a.Len(); i++ {
		v, err := a.At(i)
		if err != nil {
			return nil, err
		}
		if ignoreNulls && v.IsNull() {
			out[i] = v
			continue
		}
		out[i] = f(v)
	}
	return fromScalars(out, a.dt)
}

func fromScalars(vals []scalar.Scalar, dt arrow.DataType) (*Array, error) {
	switch dt.ID() {
	case arrow.FLOAT64:
		fvals, valid := make([]float64, len(vals)), make([]bool, len(vals))
		for i, v := range vals {
			if f, ok := asFloat(v); ok {
				fvals[i], valid[i] = f, true
			}
		}
		return NewFloat64(fvals, valid), nil
	case arrow.INT64:
		ivals, valid := make([]int64, len(vals)), make([]bool, len(vals))
		for i, v := range vals {
			if iv, ok := asInt(v); ok {
				ivals[i], valid[i] = iv, true
			}
		}
		return NewInt64(ivals, valid), nil
	default:
		return nil, epocherr.New("array.fromScalars", epocherr.ErrTypeMismatch, dt)
	}
}

func floatScalar(v float64) scalar.Scalar {
	return scalar.FromArrow(scalarNewFloat64(v))
}
func intScalar(v int64) scalar.Scalar {
	return scalar.FromArrow(scalarNewInt64(v))
}
func stringScalar(v string) scalar.Scalar {
	return scalar.FromArrow(scalarNewString(v))
}
func boolScalar(v bool) scalar.Scalar {
	return scalar.FromArrow(scalarNewBoolean(v))
}
func tsScalar(v arrow.Timestamp, dt arrow.DataType) scalar.Scalar {
	return scalar.FromArrow(scalarNewTimestamp(v, dt))
}

// TimeToTimestamp converts a time.Time to microseconds-since-epoch,
// matching NewTimestamp's unit.
func TimeToTimestamp(t time.Time) int64 {
	return t.Unix()*1_000_000 + int64(t.Nanosecond())/1000
}

// TimestampToTime converts microseconds-since-epoch back to time.Time in
// the given IANA zone (UTC if tz is empty).
func TimestampToTime(us int64, tz string) time.Time {
	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}
	return time.UnixMicro(us).In(loc)
}
