package index

import (
	"time"

	"github.com/meenmo/epochlite/array"
	"github.com/meenmo/epochlite/internal/epocherr"
)

// DatetimeIndex specializes Index for a timestamp Array, adding the
// timezone-aware operations pandas' DatetimeIndex exposes beyond the
// generic label-axis contract.
type DatetimeIndex struct {
	*Index
}

// AsDatetimeIndex views ix as a DatetimeIndex; fails if ix isn't backed by a
// timestamp Array.
func AsDatetimeIndex(ix *Index) (*DatetimeIndex, error) {
	if ix.arr.Kind() != array.KindTimestamp {
		return nil, epocherr.New("AsDatetimeIndex", epocherr.ErrTypeMismatch, ix.arr.DataType())
	}
	return &DatetimeIndex{Index: ix}, nil
}

// Timezone returns the IANA zone name, "" if naive.
func (d *DatetimeIndex) Timezone() string { return d.arr.Timezone() }

// Normalize zeroes the time-of-day component of every element, keeping the
// zone.
func (d *DatetimeIndex) Normalize() (*DatetimeIndex, error) {
	n := d.arr.Len()
	vals, valid := make([]int64, n), make([]bool, n)
	tz := d.Timezone()
	for i := 0; i < n; i++ {
		micros, ok := d.arr.TimestampMicros(i)
		if !ok {
			continue
		}
		t := array.TimestampToTime(micros, tz)
		midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		vals[i], valid[i] = array.TimeToTimestamp(midnight), true
	}
	return &DatetimeIndex{Index: Make(array.NewTimestamp(vals, valid, tz), d.name)}, nil
}

// TzLocalize attaches tz to a naive index without shifting the wall clock.
func (d *DatetimeIndex) TzLocalize(tz string) (*DatetimeIndex, error) {
	dt, err := d.arr.DT()
	if err != nil {
		return nil, err
	}
	localized, err := dt.TzLocalize(tz)
	if err != nil {
		return nil, err
	}
	return &DatetimeIndex{Index: Make(localized, d.name)}, nil
}

// TzConvert reinterprets a zone-aware index's instants in a new zone.
func (d *DatetimeIndex) TzConvert(tz string) (*DatetimeIndex, error) {
	dt, err := d.arr.DT()
	if err != nil {
		return nil, err
	}
	converted, err := dt.TzConvert(tz)
	if err != nil {
		return nil, err
	}
	return &DatetimeIndex{Index: Make(converted, d.name)}, nil
}

// ReplaceTz reattaches a different zone tag without converting the instant,
// i.e. the wall-clock fields are kept and only the zone label changes.
func (d *DatetimeIndex) ReplaceTz(tz string) (*DatetimeIndex, error) {
	naive, err := d.stripTz()
	if err != nil {
		return nil, err
	}
	return naive.TzLocalize(tz)
}

// stripTz rebuilds the array with the same wall-clock fields but no zone
// tag, the way pandas' tz_localize(None) drops a zone without shifting the
// displayed instant.
func (d *DatetimeIndex) stripTz() (*DatetimeIndex, error) {
	if d.Timezone() == "" {
		return d, nil
	}
	n := d.arr.Len()
	vals, valid := make([]int64, n), make([]bool, n)
	tz := d.Timezone()
	for i := 0; i < n; i++ {
		micros, ok := d.arr.TimestampMicros(i)
		if !ok {
			continue
		}
		local := array.TimestampToTime(micros, tz)
		naive := time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), time.UTC)
		vals[i], valid[i] = array.TimeToTimestamp(naive), true
	}
	return &DatetimeIndex{Index: Make(array.NewTimestamp(vals, valid, ""), d.name)}, nil
}

// LocalTimestamp returns each element's local (zone-naive) microseconds
// since epoch, i.e. with the timezone offset baked in as if it were UTC.
func (d *DatetimeIndex) LocalTimestamp() ([]int64, error) {
	naive, err := d.stripTz()
	if err != nil {
		return nil, err
	}
	n := naive.arr.Len()
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		micros, _ := naive.arr.TimestampMicros(i)
		out[i] = micros
	}
	return out, nil
}

// DayOfWeek returns 0=Monday..6=Sunday per element.
func (d *DatetimeIndex) DayOfWeek() (*array.Array, error) {
	dt, err := d.arr.DT()
	if err != nil {
		return nil, err
	}
	return dt.DayOfWeek(), nil
}
