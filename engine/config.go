// Package engine wires the columnar primitives together into the
// operators callers actually invoke: grouped aggregation, resampling, and
// windowing.
package engine

import "github.com/meenmo/epochlite/calendar"

// Config holds engine-wide tunables. These were previously implicit magic
// numbers scattered through the aggregation and calendar-search call sites.
type Config struct {
	// ParallelThreshold is the element count above which the resampler's
	// per-bin diff pass runs its reduction across goroutines instead of a
	// single loop.
	ParallelThreshold int

	// BusinessDaySearchLimit bounds how many calendar days CustomBusinessDay
	// offset resolution will walk before giving up, guarding against an
	// unbounded scan over a pathological all-holiday weekmask.
	BusinessDaySearchLimit int
}

// DefaultConfig provides production-ready default values.
var DefaultConfig = Config{
	ParallelThreshold:      100_000,
	BusinessDaySearchLimit: 10_000,
}

// cfg is the active configuration. Defaults to DefaultConfig.
var cfg = DefaultConfig

// SetConfig replaces the active configuration, propagating
// BusinessDaySearchLimit into the calendar package's residue-walk guard.
func SetConfig(c Config) {
	cfg = c
	if c.BusinessDaySearchLimit > 0 {
		calendar.SearchLimit = c.BusinessDaySearchLimit
	}
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	return cfg
}
