package array

import (
	"time"

	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/meenmo/epochlite/internal/epocherr"
)

// Dt is the temporal accessor over a timestamp Array, mirroring the
// pandas-style `.dt` namespace.
type Dt struct {
	a *Array
}

// DT returns the temporal accessor for a timestamp Array.
func (a *Array) DT() (Dt, error) {
	if a.kind != KindTimestamp {
		return Dt{}, epocherr.New("Array.DT", epocherr.ErrTypeMismatch, a.dt)
	}
	return Dt{a: a}, nil
}

func (d Dt) each(fn func(t time.Time) int64) *Array {
	src := d.a.arr.(*array.Timestamp)
	n := d.a.Len()
	vals, valid := make([]int64, n), make([]bool, n)
	tz := d.a.Timezone()
	for i := 0; i < n; i++ {
		if src.IsNull(i) {
			continue
		}
		t := TimestampToTime(int64(src.Value(i)), tz)
		vals[i], valid[i] = fn(t), true
	}
	return NewInt64(vals, valid)
}

func (d Dt) Year() *Array  { return d.each(func(t time.Time) int64 { return int64(t.Year()) }) }
func (d Dt) Month() *Array { return d.each(func(t time.Time) int64 { return int64(t.Month()) }) }
func (d Dt) Day() *Array   { return d.each(func(t time.Time) int64 { return int64(t.Day()) }) }
func (d Dt) Hour() *Array  { return d.each(func(t time.Time) int64 { return int64(t.Hour()) }) }
func (d Dt) Minute() *Array { return d.each(func(t time.Time) int64 { return int64(t.Minute()) }) }
func (d Dt) Second() *Array { return d.each(func(t time.Time) int64 { return int64(t.Second()) }) }
func (d Dt) Microsecond() *Array {
	return d.each(func(t time.Time) int64 { return int64(t.Nanosecond() / 1000) })
}
func (d Dt) Nanosecond() *Array {
	return d.each(func(t time.Time) int64 { return int64(t.Nanosecond()) })
}
func (d Dt) DayOfWeek() *Array {
	return d.each(func(t time.Time) int64 { return int64((t.Weekday() + 6) % 7) }) // Monday == 0
}
func (d Dt) DayOfYear() *Array {
	return d.each(func(t time.Time) int64 { return int64(t.YearDay()) })
}
func (d Dt) Quarter() *Array {
	return d.each(func(t time.Time) int64 { return int64((int(t.Month())-1)/3 + 1) })
}
func (d Dt) IsoWeek() *Array {
	return d.each(func(t time.Time) int64 { _, w := t.ISOWeek(); return int64(w) })
}
func (d Dt) IsoYear() *Array {
	return d.each(func(t time.Time) int64 { y, _ := t.ISOWeek(); return int64(y) })
}

// IsoCalendar returns (year, week, weekday) arrays in one pass, weekday
// 1=Monday..7=Sunday per ISO 8601.
func (d Dt) IsoCalendar() (year, week, weekday *Array) {
	src := d.a.arr.(*array.Timestamp)
	n := d.a.Len()
	tz := d.a.Timezone()
	yv, wv, dv := make([]int64, n), make([]int64, n), make([]int64, n)
	valid := make([]bool, n)
	for i := 0; i < n; i++ {
		if src.IsNull(i) {
			continue
		}
		t := TimestampToTime(int64(src.Value(i)), tz)
		y, w := t.ISOWeek()
		yv[i], wv[i] = int64(y), int64(w)
		dv[i] = int64((t.Weekday()+6)%7) + 1
		valid[i] = true
	}
	return NewInt64(yv, valid), NewInt64(wv, valid), NewInt64(dv, valid)
}

// IsLeapYear reports, per element, whether that element's calendar year is
// a leap year.
func (d Dt) IsLeapYear() *Array {
	src := d.a.arr.(*array.Timestamp)
	n := d.a.Len()
	tz := d.a.Timezone()
	vals, valid := make([]bool, n), make([]bool, n)
	for i := 0; i < n; i++ {
		if src.IsNull(i) {
			continue
		}
		y := TimestampToTime(int64(src.Value(i)), tz).Year()
		vals[i], valid[i] = y%4 == 0 && (y%100 != 0 || y%400 == 0), true
	}
	return NewBoolean(vals, valid)
}

// IsDST reports, per element, whether the local zone observes daylight
// saving at that instant. Naive (no-timezone) arrays report false
// everywhere.
func (d Dt) IsDST() *Array {
	src := d.a.arr.(*array.Timestamp)
	n := d.a.Len()
	tz := d.a.Timezone()
	vals, valid := make([]bool, n), make([]bool, n)
	for i := 0; i < n; i++ {
		if src.IsNull(i) {
			continue
		}
		valid[i] = true
		if tz == "" {
			continue
		}
		t := TimestampToTime(int64(src.Value(i)), tz)
		_, offsetStd := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location()).Zone()
		_, offsetNow := t.Zone()
		vals[i] = offsetNow != offsetStd
	}
	return NewBoolean(vals, valid)
}

func truncatedTimestamps(d Dt, trunc func(t time.Time) time.Time) *Array {
	src := d.a.arr.(*array.Timestamp)
	n := d.a.Len()
	tz := d.a.Timezone()
	vals, valid := make([]int64, n), make([]bool, n)
	for i := 0; i < n; i++ {
		if src.IsNull(i) {
			continue
		}
		t := TimestampToTime(int64(src.Value(i)), tz)
		vals[i], valid[i] = TimeToTimestamp(trunc(t)), true
	}
	return NewTimestamp(vals, valid, tz)
}

// Floor truncates each timestamp down to the nearest multiple of unit.
func (d Dt) Floor(unit time.Duration) *Array {
	return truncatedTimestamps(d, func(t time.Time) time.Time { return t.Truncate(unit) })
}

// Ceil rounds each timestamp up to the nearest multiple of unit.
func (d Dt) Ceil(unit time.Duration) *Array {
	return truncatedTimestamps(d, func(t time.Time) time.Time {
		floored := t.Truncate(unit)
		if floored.Equal(t) {
			return floored
		}
		return floored.Add(unit)
	})
}

// Round rounds each timestamp to the nearest multiple of unit, ties rounding
// up.
func (d Dt) Round(unit time.Duration) *Array {
	return truncatedTimestamps(d, func(t time.Time) time.Time { return t.Round(unit) })
}

// Strftime formats each timestamp with a Go reference-time layout (the
// engine's CLI translates strftime directives into layouts at the edge).
func (d Dt) Strftime(layout string) *Array {
	src := d.a.arr.(*array.Timestamp)
	n := d.a.Len()
	tz := d.a.Timezone()
	vals, valid := make([]string, n), make([]bool, n)
	for i := 0; i < n; i++ {
		if src.IsNull(i) {
			continue
		}
		vals[i], valid[i] = TimestampToTime(int64(src.Value(i)), tz).Format(layout), true
	}
	return NewString(vals, valid)
}

// Strptime parses each string element against layout into a timestamp
// Array; unparseable or null elements become null.
func Strptime(a *Array, layout, tz string) (*Array, error) {
	if a.kind != KindString {
		return nil, epocherr.New("array.Strptime", epocherr.ErrTypeMismatch, a.dt)
	}
	src := a.arr.(*array.String)
	n := a.Len()
	vals, valid := make([]int64, n), make([]bool, n)
	for i := 0; i < n; i++ {
		if src.IsNull(i) {
			continue
		}
		t, err := time.Parse(layout, src.Value(i))
		if err != nil {
			continue
		}
		vals[i], valid[i] = TimeToTimestamp(t), true
	}
	return NewTimestamp(vals, valid, tz), nil
}

// TzLocalize attaches tz to naive timestamps without shifting the
// wall-clock instant; it fails if the array is already zone-aware.
func (d Dt) TzLocalize(tz string) (*Array, error) {
	if d.a.Timezone() != "" {
		return nil, epocherr.New("Dt.TzLocalize", epocherr.ErrInvalidArgument, d.a.Timezone())
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, epocherr.New("Dt.TzLocalize", epocherr.ErrInvalidArgument, tz)
	}
	src := d.a.arr.(*array.Timestamp)
	n := d.a.Len()
	vals, valid := make([]int64, n), make([]bool, n)
	for i := 0; i < n; i++ {
		if src.IsNull(i) {
			continue
		}
		naive := TimestampToTime(int64(src.Value(i)), "")
		localized := time.Date(naive.Year(), naive.Month(), naive.Day(), naive.Hour(), naive.Minute(), naive.Second(), naive.Nanosecond(), loc)
		vals[i], valid[i] = TimeToTimestamp(localized), true
	}
	return NewTimestamp(vals, valid, tz), nil
}

// TzConvert reinterprets an already zone-aware Array's instants in a new
// zone, changing only the reported wall-clock representation.
func (d Dt) TzConvert(tz string) (*Array, error) {
	if d.a.Timezone() == "" {
		return nil, epocherr.New("Dt.TzConvert", epocherr.ErrInvalidArgument, "naive")
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, epocherr.New("Dt.TzConvert", epocherr.ErrInvalidArgument, tz)
	}
	src := d.a.arr.(*array.Timestamp)
	n := d.a.Len()
	vals, valid := make([]int64, n), make([]bool, n)
	for i := 0; i < n; i++ {
		if src.IsNull(i) {
			continue
		}
		vals[i], valid[i] = int64(src.Value(i)), true
	}
	return NewTimestamp(vals, valid, tz), nil
}

// Week returns the (Monday-anchored) week-of-year number, matching
// IsoWeek; kept as a distinct name for pandas-style call sites.
func (d Dt) Week() *Array { return d.IsoWeek() }

// YearMonthDay returns (year, month, day) arrays in one pass.
func (d Dt) YearMonthDay() (year, month, day *Array) {
	src := d.a.arr.(*array.Timestamp)
	n := d.a.Len()
	tz := d.a.Timezone()
	yv, mv, dv := make([]int64, n), make([]int64, n), make([]int64, n)
	valid := make([]bool, n)
	for i := 0; i < n; i++ {
		if src.IsNull(i) {
			continue
		}
		t := TimestampToTime(int64(src.Value(i)), tz)
		yv[i], mv[i], dv[i] = int64(t.Year()), int64(t.Month()), int64(t.Day())
		valid[i] = true
	}
	return NewInt64(yv, valid), NewInt64(mv, valid), NewInt64(dv, valid)
}
