package offset

import (
	"time"

	"github.com/meenmo/epochlite/relativedelta"
)

// RelativeDeltaOffset applies an arbitrary RelativeDelta n times, for
// offsets that don't fit the tick/calendar-anchor shapes above (e.g.
// "first Friday after the 15th").
type RelativeDeltaOffset struct {
	delta relativedelta.RelativeDelta
	n     int
}

// NewRelativeDeltaOffset builds an offset that applies delta n times.
func NewRelativeDeltaOffset(delta relativedelta.RelativeDelta, n int) RelativeDeltaOffset {
	return RelativeDeltaOffset{delta: delta, n: n}
}

func (r RelativeDeltaOffset) N() int { return r.n }

func (r RelativeDeltaOffset) Negate() Offset {
	return RelativeDeltaOffset{delta: r.delta, n: -r.n}
}

func (r RelativeDeltaOffset) Apply(t time.Time) (time.Time, error) {
	result := t
	steps := r.n
	delta := r.delta
	if steps < 0 {
		delta = delta.Negate()
		steps = -steps
	}
	for i := 0; i < steps; i++ {
		next, err := delta.Apply(result)
		if err != nil {
			return time.Time{}, err
		}
		result = next
	}
	return result, nil
}

// IsOnOffset is conservative: a single Apply step never leaves t unchanged
// for a non-trivial delta, so only the zero delta is treated as already
// on-offset.
func (r RelativeDeltaOffset) IsOnOffset(t time.Time) bool {
	return r.delta.IsZero()
}
