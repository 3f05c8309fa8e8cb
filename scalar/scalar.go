// Package scalar implements the engine's Scalar façade: a thin, semantic
// wrapper around an Arrow scalar that normalizes null-handling, type
// agreement, and comparison the way the core requires.
package scalar

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	arrowscalar "github.com/apache/arrow-go/v18/arrow/scalar"
	"github.com/shopspring/decimal"

	"github.com/meenmo/epochlite/internal/epocherr"
)

// Scalar wraps an Arrow scalar value. Its declared type is immutable once
// constructed; every accessor below fails with epocherr.ErrTypeMismatch
// when asked to extract a value of a different type.
type Scalar struct {
	inner arrowscalar.Scalar // nil means SQL-null with no declared type info beyond dt
	dt    arrow.DataType
	dec   *decimal.Decimal // set only by FromDecimal, whose declared dt is arrow.Null
}

// Null constructs a null Scalar of the given declared type.
func Null(dt arrow.DataType) Scalar {
	return Scalar{dt: dt}
}

// FromArrow wraps an existing Arrow scalar.
func FromArrow(s arrowscalar.Scalar) Scalar {
	if s == nil {
		return Scalar{}
	}
	return Scalar{inner: s, dt: s.DataType()}
}

// FromDecimal constructs a decimal-typed Scalar; the engine routes the
// decimal type tag through shopspring/decimal rather than Arrow's
// fixed-precision decimal128/256 scalar, since callers build decimals from
// arbitrary-precision string/float input without pre-declaring scale.
func FromDecimal(d decimal.Decimal) Scalar {
	return Scalar{dt: arrow.Null, dec: &d}
}

// IsNull reports whether the scalar carries no value.
func (s Scalar) IsNull() bool {
	if s.dec != nil {
		return false
	}
	return s.inner == nil || !s.inner.IsValid()
}

// IsNotNull is the complement of IsNull.
func (s Scalar) IsNotNull() bool { return !s.IsNull() }

// DataType returns the scalar's declared type.
func (s Scalar) DataType() arrow.DataType { return s.dt }

// Decimal extracts the decimal value, failing if the scalar isn't a
// decimal-typed, non-null scalar.
func (s Scalar) Decimal() (decimal.Decimal, error) {
	if s.dec == nil {
		return decimal.Decimal{}, epocherr.New("Scalar.Decimal", epocherr.ErrTypeMismatch, s.dt)
	}
	return *s.dec, nil
}

// sameType requires both scalars to declare compatible types before a
// comparison or cast proceeds.
func sameType(a, b Scalar) error {
	if a.dec != nil || b.dec != nil {
		if a.dec != nil && b.dec != nil {
			return nil
		}
		return epocherr.New("Scalar.compare", epocherr.ErrTypeMismatch, fmt.Sprintf("%v vs %v", a.dt, b.dt))
	}
	if a.dt == nil || b.dt == nil || !arrow.TypeEqual(a.dt, b.dt) {
		return epocherr.New("Scalar.compare", epocherr.ErrTypeMismatch, fmt.Sprintf("%v vs %v", a.dt, b.dt))
	}
	return nil
}

// Equal compares two scalars of compatible type. Null compares equal only
// to null.
func (s Scalar) Equal(other Scalar) (bool, error) {
	if err := sameType(s, other); err != nil {
		return false, err
	}
	if s.IsNull() || other.IsNull() {
		return s.IsNull() && other.IsNull(), nil
	}
	if s.dec != nil {
		return s.dec.Equal(*other.dec), nil
	}
	return arrowscalar.Equals(s.inner, other.inner), nil
}

// Less compares two non-null scalars of compatible type.
func (s Scalar) Less(other Scalar) (bool, error) {
	if err := sameType(s, other); err != nil {
		return false, err
	}
	if s.IsNull() || other.IsNull() {
		return false, epocherr.New("Scalar.Less", epocherr.ErrNullDereference, nil)
	}
	if s.dec != nil {
		return s.dec.LessThan(*other.dec), nil
	}
	af, aok := asFloat64(s.inner)
	bf, bok := asFloat64(other.inner)
	if aok && bok {
		return af < bf, nil
	}
	return fmt.Sprint(s.inner) < fmt.Sprint(other.inner), nil
}

// asFloat64 extracts a numeric value from the common Arrow numeric scalar
// kinds for ordering comparisons; non-numeric kinds fall back to string
// ordering in Less.
func asFloat64(v arrowscalar.Scalar) (float64, bool) {
	switch s := v.(type) {
	case *arrowscalar.Int8:
		return float64(s.Value), true
	case *arrowscalar.Int16:
		return float64(s.Value), true
	case *arrowscalar.Int32:
		return float64(s.Value), true
	case *arrowscalar.Int64:
		return float64(s.Value), true
	case *arrowscalar.Uint8:
		return float64(s.Value), true
	case *arrowscalar.Uint16:
		return float64(s.Value), true
	case *arrowscalar.Uint32:
		return float64(s.Value), true
	case *arrowscalar.Uint64:
		return float64(s.Value), true
	case *arrowscalar.Float32:
		return float64(s.Value), true
	case *arrowscalar.Float64:
		return s.Value, true
	default:
		return 0, false
	}
}

func (s Scalar) String() string {
	if s.IsNull() {
		return "null"
	}
	if s.dec != nil {
		return s.dec.String()
	}
	return fmt.Sprint(s.inner)
}
