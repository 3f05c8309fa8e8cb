package scalar_test

import (
	"testing"

	arrowscalar "github.com/apache/arrow-go/v18/arrow/scalar"
	"github.com/shopspring/decimal"

	"github.com/meenmo/epochlite/scalar"
)

func TestNullIsNull(t *testing.T) {
	s := scalar.FromArrow(arrowscalar.MakeNullScalar(arrowscalar.NewInt64Scalar(0).DataType()))
	if !s.IsNull() {
		t.Fatal("expected null scalar")
	}
	if s.IsNotNull() {
		t.Fatal("IsNotNull should be false for a null scalar")
	}
}

func TestEqualRequiresSameType(t *testing.T) {
	a := scalar.FromArrow(arrowscalar.NewInt64Scalar(1))
	b := scalar.FromArrow(arrowscalar.NewFloat64Scalar(1))
	if _, err := a.Equal(b); err == nil {
		t.Fatal("expected type mismatch error comparing int64 to float64")
	}
}

func TestEqualSameType(t *testing.T) {
	a := scalar.FromArrow(arrowscalar.NewInt64Scalar(42))
	b := scalar.FromArrow(arrowscalar.NewInt64Scalar(42))
	eq, err := a.Equal(b)
	if err != nil {
		t.Fatalf("Equal: %v", err)
	}
	if !eq {
		t.Fatal("expected 42 == 42")
	}
}

func TestLessNumeric(t *testing.T) {
	a := scalar.FromArrow(arrowscalar.NewFloat64Scalar(1.5))
	b := scalar.FromArrow(arrowscalar.NewFloat64Scalar(2.5))
	less, err := a.Less(b)
	if err != nil {
		t.Fatalf("Less: %v", err)
	}
	if !less {
		t.Fatal("expected 1.5 < 2.5")
	}
}

func TestDecimalRoundTrip(t *testing.T) {
	d := decimal.RequireFromString("3.14")
	s := scalar.FromDecimal(d)
	got, err := s.Decimal()
	if err != nil {
		t.Fatalf("Decimal: %v", err)
	}
	if !got.Equal(d) {
		t.Fatalf("got %v want %v", got, d)
	}
}

func TestDecimalTypeMismatch(t *testing.T) {
	a := scalar.FromArrow(arrowscalar.NewInt64Scalar(1))
	if _, err := a.Decimal(); err == nil {
		t.Fatal("expected error extracting decimal from an int64 scalar")
	}
}
