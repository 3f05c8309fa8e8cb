package index

import (
	"github.com/meenmo/epochlite/array"
	"github.com/meenmo/epochlite/internal/epocherr"
)

// Union returns the labels present in ix or other, first-seen order from ix
// then other, deduplicated.
func (ix *Index) Union(other *Index) (*Index, error) {
	return ix.combine(other, func(inA, inB bool) bool { return inA || inB })
}

// Intersection returns the labels present in both ix and other.
func (ix *Index) Intersection(other *Index) (*Index, error) {
	return ix.combine(other, func(inA, inB bool) bool { return inA && inB })
}

// Difference returns the labels in ix but not in other.
func (ix *Index) Difference(other *Index) (*Index, error) {
	return ix.combine(other, func(inA, inB bool) bool { return inA && !inB })
}

// SymmetricDifference returns the labels in exactly one of ix, other.
func (ix *Index) SymmetricDifference(other *Index) (*Index, error) {
	return ix.combine(other, func(inA, inB bool) bool { return inA != inB })
}

// combine implements the four set operations above as one predicate-driven
// pass: positions kept from ix are those where keep(true, present-in-other)
// holds; positions kept from other (only relevant for Union and
// SymmetricDifference, where keep(false, true) can be true) are those
// labels of other not already present in ix.
func (ix *Index) combine(other *Index, keep func(inA, inB bool) bool) (*Index, error) {
	if ix.arr.Kind() != other.arr.Kind() {
		return nil, epocherr.New("Index.combine", epocherr.ErrTypeMismatch, other.arr.DataType())
	}
	otherKeys := make(map[string]struct{}, other.Len())
	for i := 0; i < other.Len(); i++ {
		otherKeys[labelKey(other.arr, i)] = struct{}{}
	}
	selfKeys := make(map[string]struct{}, ix.Len())
	for i := 0; i < ix.Len(); i++ {
		selfKeys[labelKey(ix.arr, i)] = struct{}{}
	}

	seen := make(map[string]struct{})
	var fromSelf []int
	for i := 0; i < ix.Len(); i++ {
		key := labelKey(ix.arr, i)
		if _, dup := seen[key]; dup {
			continue
		}
		_, inB := otherKeys[key]
		if keep(true, inB) {
			seen[key] = struct{}{}
			fromSelf = append(fromSelf, i)
		}
	}
	base, err := ix.Take(fromSelf)
	if err != nil {
		return nil, err
	}

	if !keep(false, true) {
		return base, nil
	}

	seenOther := make(map[string]struct{})
	var fromOther []int
	for i := 0; i < other.Len(); i++ {
		key := labelKey(other.arr, i)
		if _, dup := seenOther[key]; dup {
			continue
		}
		if _, inA := selfKeys[key]; inA {
			continue // already represented via fromSelf
		}
		seenOther[key] = struct{}{}
		fromOther = append(fromOther, i)
	}
	if len(fromOther) == 0 {
		return base, nil
	}
	otherOnly, err := other.Take(fromOther)
	if err != nil {
		return nil, err
	}
	return concatIndexes(base, otherOnly)
}

// SortValues returns a new Index sorted by label.
func (ix *Index) SortValues(ascending bool) (*Index, error) {
	sorted, err := ix.arr.Sort(ascending)
	if err != nil {
		return nil, err
	}
	return Make(sorted, ix.name), nil
}

// IsIn reports, per label, whether it appears in other.
func (ix *Index) IsIn(other *Index) (*array.Array, error) { return ix.arr.IsIn(other.arr) }

// Diff returns element[i] - element[i-periods] for numeric indexes.
func (ix *Index) Diff(periods int) (*array.Array, error) { return ix.arr.Diff(periods) }
