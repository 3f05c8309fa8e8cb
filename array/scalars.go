package array

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	arrowscalar "github.com/apache/arrow-go/v18/arrow/scalar"

	"github.com/meenmo/epochlite/scalar"
)

var scalarFloat64Type = arrow.PrimitiveTypes.Float64

func scalarNewFloat64(v float64) arrowscalar.Scalar { return arrowscalar.NewFloat64Scalar(v) }
func scalarNewInt64(v int64) arrowscalar.Scalar     { return arrowscalar.NewInt64Scalar(v) }
func scalarNewString(v string) arrowscalar.Scalar   { return arrowscalar.NewStringScalar(v) }
func scalarNewBoolean(v bool) arrowscalar.Scalar    { return arrowscalar.NewBooleanScalar(v) }

func scalarNewTimestamp(v arrow.Timestamp, dt arrow.DataType) arrowscalar.Scalar {
	tt, _ := dt.(*arrow.TimestampType)
	return arrowscalar.NewTimestampScalar(v, tt)
}

// asFloat extracts a float64 from a Scalar produced by this package,
// covering the numeric kinds FillNull/Map are exercised against.
func asFloat(s scalar.Scalar) (float64, bool) {
	if s.IsNull() {
		return 0, false
	}
	if d, err := s.Decimal(); err == nil {
		f, _ := d.Float64()
		return f, true
	}
	switch s.DataType().ID() {
	case arrow.FLOAT64, arrow.INT64, arrow.INT32, arrow.FLOAT32:
		var v float64
		_, err := fmt.Sscan(s.String(), &v)
		return v, err == nil
	default:
		return 0, false
	}
}

// asInt extracts an int64 from a Scalar, truncating any fractional part.
func asInt(s scalar.Scalar) (int64, bool) {
	f, ok := asFloat(s)
	if !ok {
		return 0, false
	}
	return int64(f), true
}
