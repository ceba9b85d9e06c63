package habit

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidValue is returned by ParseValue for text that is not a number.
	ErrInvalidValue = errors.New("habit: please enter a valid number")
	// ErrNegativeValue is returned by ParseValue for numbers below zero.
	ErrNegativeValue = errors.New("habit: please enter a positive number")
)

// Normalize quantizes raw to the canonical precision of t. WholeNumber
// discards the fractional part (1.9 becomes 1). Decimal keeps one fractional
// digit and drops the rest without rounding (1.29 becomes 1.2). The work is
// done on exact decimal digits, so any magnitude is kept.
//
// raw must be non-negative; callers validate input first (see ParseValue).
func Normalize(t Type, raw decimal.Decimal) NumericValue {
	if t == WholeNumber {
		return NumericValue{Value: raw.Truncate(0), WholeNumber: true}
	}
	return NumericValue{Value: raw.Truncate(1), WholeNumber: false}
}

// NormalizeFloat is Normalize for float input. The float is converted using
// its shortest decimal representation, so 1.2 is treated as exactly 1.2.
// Non-finite input normalizes to zero.
func NormalizeFloat(t Type, raw float64) NumericValue {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return Zero(t)
	}
	return Normalize(t, decimal.NewFromFloat(raw))
}

var (
	wholeStep   = decimal.New(1, 0)
	decimalStep = decimal.New(1, -1)
)

// Step adds or removes one unit (1 for WholeNumber, 0.1 for Decimal) from an
// already normalized value. Results below zero clamp to zero.
func Step(t Type, current NumericValue, increment bool) NumericValue {
	unit := decimalStep
	if t == WholeNumber {
		unit = wholeStep
	}
	if !increment {
		unit = unit.Neg()
	}
	next := Normalize(t, current.Value.Add(unit))
	if next.Value.IsNegative() {
		return Zero(t)
	}
	return next
}

// Display renders whole numbers as integers and decimals with their single
// fractional digit ("1.2", "3.0").
func (n NumericValue) Display() string {
	if n.WholeNumber {
		return n.Value.Truncate(0).String()
	}
	return n.Value.Truncate(1).StringFixed(1)
}

// Float64 returns the value as a float for consumers that need one (JSON DTOs).
func (n NumericValue) Float64() float64 {
	f, _ := n.Value.Float64()
	return f
}

// ParseValue validates user text and normalizes it against t. Empty,
// unparseable, non-finite and negative input is rejected.
func ParseValue(t Type, text string) (NumericValue, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return NumericValue{}, ErrInvalidValue
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return NumericValue{}, fmt.Errorf("%w: %q", ErrInvalidValue, text)
	}
	if d.IsNegative() {
		return NumericValue{}, ErrNegativeValue
	}
	return Normalize(t, d), nil
}

// Adjust steps the value held in an input field. Text that does not parse
// (including an empty field) counts as zero.
func Adjust(t Type, text string, increment bool) NumericValue {
	current, err := ParseValue(t, text)
	if err != nil {
		current = Zero(t)
	}
	return Step(t, current, increment)
}
