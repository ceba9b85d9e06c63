package habit

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeWholeNumberTruncates(t *testing.T) {
	for _, tc := range []struct {
		in   float64
		want string
	}{
		{1.9, "1"},
		{0.99, "0"},
		{50, "50"},
		{12.5, "12"},
	} {
		got := NormalizeFloat(WholeNumber, tc.in)
		if !got.WholeNumber {
			t.Fatalf("NormalizeFloat(WholeNumber, %v) lost the whole number flag", tc.in)
		}
		if got.Display() != tc.want {
			t.Fatalf("NormalizeFloat(WholeNumber, %v) = %s, want %s", tc.in, got.Display(), tc.want)
		}
	}
}

func TestNormalizeDecimalQuantizesToTenths(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{"1.2", "1.2"},
		{"1.29", "1.2"},
		{"0.05", "0.0"},
		{"3", "3.0"},
		{"10.99999", "10.9"},
	} {
		got := Normalize(Decimal, decimal.RequireFromString(tc.in))
		if got.WholeNumber {
			t.Fatalf("Normalize(Decimal, %s) flagged whole number", tc.in)
		}
		if got.Display() != tc.want {
			t.Fatalf("Normalize(Decimal, %s) = %s, want %s", tc.in, got.Display(), tc.want)
		}
	}
}

func TestNormalizeDecimalIdempotent(t *testing.T) {
	for _, f := range []float64{0, 0.1, 0.3, 1.2, 1.25, 2.999, 100.04, 12345.67} {
		once := NormalizeFloat(Decimal, f)
		twice := Normalize(Decimal, once.Value)
		if !once.Equal(twice) {
			t.Fatalf("normalize not idempotent for %v: %s then %s", f, once.Display(), twice.Display())
		}
		if once.Value.Exponent() < -1 && !once.Value.Equal(once.Value.Truncate(1)) {
			t.Fatalf("more than one fractional digit for %v: %s", f, once.Value)
		}
		if strings.Count(once.Display(), ".") != 1 || len(once.Display()[strings.Index(once.Display(), ".")+1:]) != 1 {
			t.Fatalf("display %q should carry exactly one fractional digit", once.Display())
		}
	}
}

func TestNormalizeFloatDoesNotDrift(t *testing.T) {
	// 0.1+0.1+0.1 is 0.30000000000000004 as a float64.
	v := NormalizeFloat(Decimal, 0.1+0.1+0.1)
	if v.Display() != "0.3" {
		t.Fatalf("expected 0.3, got %s", v.Display())
	}

	// 1.2*10 is 11.999999999999998 as a float64; naive truncation yields 1.1.
	if got := NormalizeFloat(Decimal, 1.2).Display(); got != "1.2" {
		t.Fatalf("expected 1.2, got %s", got)
	}
}

func TestStepDecimalAccumulatesExactly(t *testing.T) {
	v := Zero(Decimal)
	for i := 0; i < 30; i++ {
		v = Step(Decimal, v, true)
	}
	if v.Display() != "3.0" {
		t.Fatalf("thirty 0.1 steps should be 3.0, got %s", v.Display())
	}
	if !v.Value.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("expected exactly 3, got %s", v.Value)
	}
}

func TestStepNeverNegative(t *testing.T) {
	for _, typ := range []Type{WholeNumber, Decimal} {
		for _, start := range []string{"0", "0.1", "1", "2.5"} {
			v := Normalize(typ, decimal.RequireFromString(start))
			for i := 0; i < 40; i++ {
				v = Step(typ, v, false)
				if v.Value.IsNegative() {
					t.Fatalf("%s step below zero from %s: %s", typ, start, v.Display())
				}
			}
			if !v.Value.IsZero() {
				t.Fatalf("%s expected to bottom out at zero, got %s", typ, v.Display())
			}
		}
	}
}

func TestStepWholeNumber(t *testing.T) {
	v := NormalizeFloat(WholeNumber, 49)
	v = Step(WholeNumber, v, true)
	if v.Display() != "50" || !v.WholeNumber {
		t.Fatalf("expected 50, got %s", v.Display())
	}
	v = Step(WholeNumber, v, false)
	if v.Display() != "49" {
		t.Fatalf("expected 49, got %s", v.Display())
	}
}

func TestParseValue(t *testing.T) {
	if _, err := ParseValue(Decimal, "abc"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if _, err := ParseValue(Decimal, ""); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue for empty input, got %v", err)
	}
	if _, err := ParseValue(WholeNumber, "-3"); !errors.Is(err, ErrNegativeValue) {
		t.Fatalf("expected ErrNegativeValue, got %v", err)
	}
	v, err := ParseValue(Decimal, " 2.37 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Display() != "2.3" {
		t.Fatalf("expected 2.3, got %s", v.Display())
	}
}

func TestAdjustFromEmptyField(t *testing.T) {
	if got := Adjust(Decimal, "", true).Display(); got != "0.1" {
		t.Fatalf("expected 0.1, got %s", got)
	}
	if got := Adjust(WholeNumber, "", false).Display(); got != "0" {
		t.Fatalf("expected 0, got %s", got)
	}
	if got := Adjust(Decimal, "1.2", false).Display(); got != "1.1" {
		t.Fatalf("expected 1.1, got %s", got)
	}
}

func TestParseValueKeepsLargeMagnitudes(t *testing.T) {
	for _, tc := range []struct {
		typ  Type
		in   string
		want string
	}{
		{Decimal, "1e18", "1000000000000000000.0"},
		{Decimal, "1e19", "10000000000000000000.0"},
		{Decimal, "98765432109876543210.987", "98765432109876543210.9"},
		{WholeNumber, "1e18", "1000000000000000000"},
		{WholeNumber, "1e19", "10000000000000000000"},
		{WholeNumber, "18446744073709551616.7", "18446744073709551616"},
	} {
		got, err := ParseValue(tc.typ, tc.in)
		if err != nil {
			t.Fatalf("ParseValue(%s, %s): %v", tc.typ, tc.in, err)
		}
		if got.Value.IsNegative() {
			t.Fatalf("ParseValue(%s, %s) wrapped negative: %s", tc.typ, tc.in, got.Value)
		}
		if got.Display() != tc.want {
			t.Fatalf("ParseValue(%s, %s) = %s, want %s", tc.typ, tc.in, got.Display(), tc.want)
		}
	}
}

func TestStepLargeValues(t *testing.T) {
	big, _ := ParseValue(Decimal, "1e19")
	if got := Step(Decimal, big, true).Display(); got != "10000000000000000000.1" {
		t.Fatalf("step up = %s", got)
	}
	if got := Step(Decimal, big, false).Display(); got != "9999999999999999999.9" {
		t.Fatalf("step down = %s", got)
	}
	whole, _ := ParseValue(WholeNumber, "1e19")
	if got := Step(WholeNumber, whole, true).Display(); got != "10000000000000000001" {
		t.Fatalf("whole step up = %s", got)
	}
}
