package engine

import (
	"github.com/meenmo/epochlite/array"
	"github.com/meenmo/epochlite/index"
	"github.com/meenmo/epochlite/internal/epocherr"
)

// GroupBy partitions values by the corresponding labels in keys and applies
// op within each partition, returning a new Index of distinct keys (first-
// seen order) alongside the per-group results.
func GroupBy(keys *index.Index, values *array.Array, op AggregateOp, skipNulls bool, minCount int) (*index.Index, *array.Array, error) {
	if keys.Len() != values.Len() {
		return nil, nil, epocherr.New("engine.GroupBy", epocherr.ErrInvalidArgument, values.Len())
	}
	order, groups, err := partition(keys)
	if err != nil {
		return nil, nil, err
	}
	results := make([]float64, len(order))
	valid := make([]bool, len(order))
	for i, rep := range order {
		positions := groups[rep]
		subset, err := values.Take(positions, true)
		if err != nil {
			return nil, nil, err
		}
		result, err := Apply(op, subset, skipNulls, minCount)
		if err != nil {
			return nil, nil, err
		}
		if result.IsNull() {
			continue
		}
		f, ok := asFloatValue(result)
		results[i], valid[i] = f, ok
	}
	keyPositions := make([]int, len(order))
	for i, rep := range order {
		keyPositions[i] = groups[rep][0]
	}
	keyIndex, err := keys.Take(keyPositions)
	if err != nil {
		return nil, nil, err
	}
	return keyIndex, array.NewFloat64(results, valid), nil
}

// partition groups keys' positions by their label, preserving first-seen
// key order; the returned map is keyed by the label's string form since
// that is the identity Index itself uses for lookups.
func partition(keys *index.Index) ([]string, map[string][]int, error) {
	groups := make(map[string][]int)
	var order []string
	arr := keys.Array()
	for i := 0; i < arr.Len(); i++ {
		var key string
		if arr.IsNullAt(i) {
			key = "\x00null"
		} else {
			v, err := arr.At(i)
			if err != nil {
				return nil, nil, err
			}
			key = v.String()
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}
	return order, groups, nil
}
