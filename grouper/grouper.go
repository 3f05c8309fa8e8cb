// Package grouper implements time-based binning: deriving bin edges and
// labels from a timestamp index and a frequency, the way a resample/groupby
// operation buckets rows before aggregation.
package grouper

import (
	"time"

	"github.com/meenmo/epochlite/array"
	"github.com/meenmo/epochlite/index"
	"github.com/meenmo/epochlite/internal/epocherr"
	"github.com/meenmo/epochlite/offset"
)

// ClosedSide selects which bin edge is inclusive.
type ClosedSide int

const (
	ClosedLeft ClosedSide = iota
	ClosedRight
)

// LabelSide selects which bin edge labels the resulting group.
type LabelSide int

const (
	LabelLeft LabelSide = iota
	LabelRight
)

// Options configures a TimeGrouper. Freq is required; Closed/Label default
// to Left for tick frequencies and Right for calendar-anchored
// month/quarter/year/week offsets, matching the convention that a "ME"
// (month-end) bucket is named and closed on its right edge.
type Options struct {
	Freq   offset.Offset
	Closed *ClosedSide
	Label  *LabelSide
	Origin *time.Time // nil means "start_day": midnight of the first timestamp's day.
	Offset time.Duration
}

// TimeGrouper bins a timestamp index by Freq.
type TimeGrouper struct {
	opts Options
}

// New builds a TimeGrouper, applying freq-derived defaults for any Closed/
// Label left unset.
func New(opts Options) TimeGrouper {
	if opts.Closed == nil {
		c := defaultClosedSide(opts.Freq)
		opts.Closed = &c
	}
	if opts.Label == nil {
		l := defaultLabelSide(opts.Freq)
		opts.Label = &l
	}
	return TimeGrouper{opts: opts}
}

func isCalendarAnchored(o offset.Offset) bool {
	switch o.(type) {
	case offset.MonthOffset, offset.QuarterOffset, offset.YearOffset, offset.Week:
		return true
	default:
		return false
	}
}

func defaultClosedSide(o offset.Offset) ClosedSide {
	if isCalendarAnchored(o) {
		return ClosedRight
	}
	return ClosedLeft
}

func defaultLabelSide(o offset.Offset) LabelSide {
	if isCalendarAnchored(o) {
		return LabelRight
	}
	return LabelLeft
}

// Bin is a half-open time interval with its resulting group label.
type Bin struct {
	Start, Stop time.Time
	Label       time.Time
}

// adjustDatesAnchored computes the first bin edge at or before the first
// timestamp, anchored to origin (defaulting to midnight of first's day) and
// shifted by opts.Offset, matching pandas' adjust_dates_anchored.
func (g TimeGrouper) adjustDatesAnchored(first time.Time) (time.Time, error) {
	origin := g.opts.Origin
	var anchor time.Time
	if origin != nil {
		anchor = *origin
	} else {
		anchor = time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, first.Location())
	}
	anchor = anchor.Add(g.opts.Offset)
	// Walk anchor backward/forward by the frequency until it is the latest
	// edge at or before first.
	if anchor.After(first) {
		for anchor.After(first) {
			prev, err := g.opts.Freq.Negate().Apply(anchor)
			if err != nil {
				return time.Time{}, err
			}
			if !prev.Before(anchor) {
				return time.Time{}, epocherr.New("TimeGrouper.adjustDatesAnchored", epocherr.ErrInvalidFrequency, nil)
			}
			anchor = prev
		}
	} else {
		for {
			next, err := g.opts.Freq.Apply(anchor)
			if err != nil {
				return time.Time{}, err
			}
			if next.After(first) {
				break
			}
			anchor = next
		}
	}

	// closed==Right needs the first bin to be (prev, first], not
	// (first, next]. When first already sits exactly on an anchor
	// (foffset==0), pandas' adjust_dates_anchored snaps back by a whole
	// freq instead of the zero offset so the on-anchor observation still
	// has a preceding edge to be "after".
	if *g.opts.Closed == ClosedRight && anchor.Equal(first) {
		prev, err := g.opts.Freq.Negate().Apply(anchor)
		if err != nil {
			return time.Time{}, err
		}
		anchor = prev
	}
	return anchor, nil
}

// GenerateBins computes the half-open bin edges covering ts (which need not
// be sorted; only min/max matter) and assigns each element to its bin.
func (g TimeGrouper) GenerateBins(ts *index.DatetimeIndex) ([]Bin, []int, error) {
	n := ts.Len()
	if n == 0 {
		return nil, nil, nil
	}
	argMin, argMax := ts.ArgMin(), ts.ArgMax()
	if argMin < 0 || argMax < 0 {
		return nil, nil, epocherr.New("TimeGrouper.GenerateBins", epocherr.ErrNullDereference, nil)
	}
	tz := ts.Timezone()
	firstMicros, _ := ts.Array().TimestampMicros(argMin)
	lastMicros, _ := ts.Array().TimestampMicros(argMax)
	first := array.TimestampToTime(firstMicros, tz)
	last := array.TimestampToTime(lastMicros, tz)

	edge, err := g.adjustDatesAnchored(first)
	if err != nil {
		return nil, nil, err
	}

	var edges []time.Time
	for !edge.After(last) {
		edges = append(edges, edge)
		next, err := g.opts.Freq.Apply(edge)
		if err != nil {
			return nil, nil, err
		}
		if !next.After(edge) {
			return nil, nil, epocherr.New("TimeGrouper.GenerateBins", epocherr.ErrInvalidFrequency, nil)
		}
		edge = next
	}
	edges = append(edges, edge) // final right edge, one past `last`

	bins := make([]Bin, len(edges)-1)
	for i := 0; i < len(bins); i++ {
		bins[i] = Bin{Start: edges[i], Stop: edges[i+1], Label: g.labelFor(edges[i], edges[i+1])}
	}

	groupIDs := make([]int, n)
	for i := 0; i < n; i++ {
		micros, ok := ts.Array().TimestampMicros(i)
		if !ok {
			groupIDs[i] = -1
			continue
		}
		t := array.TimestampToTime(micros, tz)
		groupIDs[i] = g.locateBin(bins, t)
	}
	return bins, groupIDs, nil
}

func (g TimeGrouper) labelFor(start, stop time.Time) time.Time {
	if *g.opts.Label == LabelRight {
		return stop
	}
	return start
}

func (g TimeGrouper) locateBin(bins []Bin, t time.Time) int {
	for i, b := range bins {
		if g.inBin(b, t) {
			return i
		}
	}
	return -1
}

func (g TimeGrouper) inBin(b Bin, t time.Time) bool {
	if *g.opts.Closed == ClosedRight {
		return t.After(b.Start) && !t.After(b.Stop)
	}
	return !t.Before(b.Start) && t.Before(b.Stop)
}
