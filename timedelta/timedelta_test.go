package timedelta_test

import (
	"testing"

	"github.com/meenmo/epochlite/timedelta"
)

func TestNewNormalizesNegativeComponents(t *testing.T) {
	td, err := timedelta.New(timedelta.Components{Days: -1, Seconds: -1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if td.Days() != -2 || td.Seconds() != 86399 || td.Microseconds() != 0 {
		t.Fatalf("got days=%d seconds=%d micros=%d", td.Days(), td.Seconds(), td.Microseconds())
	}
}

func TestNewFoldsWeeksAndMilliseconds(t *testing.T) {
	td, err := timedelta.New(timedelta.Components{Weeks: 1, Milliseconds: 1500})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if td.Days() != 7 || td.Seconds() != 1 || td.Microseconds() != 500000 {
		t.Fatalf("got days=%d seconds=%d micros=%d", td.Days(), td.Seconds(), td.Microseconds())
	}
}

func TestOverflow(t *testing.T) {
	_, err := timedelta.New(timedelta.Components{Days: 2_000_000_000})
	if err == nil {
		t.Fatal("expected overflow error")
	}
}

func TestAddSubNegate(t *testing.T) {
	a := timedelta.MustNew(timedelta.Components{Days: 1, Hours: 2})
	b := timedelta.MustNew(timedelta.Components{Hours: 3})
	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	want := timedelta.MustNew(timedelta.Components{Days: 1, Hours: 5})
	if !sum.Equal(want) {
		t.Fatalf("got %v want %v", sum, want)
	}

	diff, err := sum.Sub(b)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if !diff.Equal(a) {
		t.Fatalf("got %v want %v", diff, a)
	}

	if !a.Negate().Negate().Equal(a) {
		t.Fatal("double negation should be identity")
	}
}

func TestCompare(t *testing.T) {
	a := timedelta.MustNew(timedelta.Components{Days: 1})
	b := timedelta.MustNew(timedelta.Components{Hours: 25})
	if a.Compare(b) >= 0 {
		t.Fatalf("expected a < b")
	}
}

func TestMulFloatRejectsInexact(t *testing.T) {
	a := timedelta.MustNew(timedelta.Components{Seconds: 1})
	if _, err := a.MulFloat(1.0 / 3); err == nil {
		t.Fatal("expected inexact float multiplication to fail")
	}
	if _, err := a.MulFloat(0.5); err != nil {
		t.Fatalf("exact half-second multiplication should succeed: %v", err)
	}
}

func TestDivIntByZero(t *testing.T) {
	a := timedelta.MustNew(timedelta.Components{Seconds: 10})
	if _, err := a.DivInt(0); err == nil {
		t.Fatal("expected error dividing by zero")
	}
}
