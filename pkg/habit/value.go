package habit

import (
	"github.com/shopspring/decimal"
)

// Kind tags the Value variants.
type Kind string

const (
	KindBoolean Kind = "boolean"
	KindNumeric Kind = "numeric"
)

// Value is the recorded value of a habit on one date. The set of
// implementations is closed: BooleanValue and NumericValue.
//
// A missing entry means "unset", which is distinct from BooleanValue{false}.
type Value interface {
	Kind() Kind
	// ValidFor reports whether the value may be stored on a habit of type t.
	ValidFor(t Type) bool
	String() string

	sealed()
}

// BooleanValue records done / not done for Boolean habits.
type BooleanValue struct {
	Completed bool
}

// Kind implements Value.
func (BooleanValue) Kind() Kind { return KindBoolean }

// ValidFor implements Value.
func (BooleanValue) ValidFor(t Type) bool { return t == Boolean }

func (b BooleanValue) String() string {
	if b.Completed {
		return "✓"
	}
	return "×"
}

func (BooleanValue) sealed() {}

// NumericValue records a count or a measurement. WholeNumber is carried on
// the value so it stays self-describing once computed.
type NumericValue struct {
	Value       decimal.Decimal
	WholeNumber bool
}

// Kind implements Value.
func (NumericValue) Kind() Kind { return KindNumeric }

// ValidFor implements Value.
func (n NumericValue) ValidFor(t Type) bool {
	switch t {
	case WholeNumber:
		return n.WholeNumber
	case Decimal:
		return !n.WholeNumber
	default:
		return false
	}
}

// String returns Display().
func (n NumericValue) String() string { return n.Display() }

func (NumericValue) sealed() {}

// Equal compares numerically, so 1.2 and 1.20 are the same value.
func (n NumericValue) Equal(o NumericValue) bool {
	return n.WholeNumber == o.WholeNumber && n.Value.Equal(o.Value)
}

// Zero returns the zero NumericValue for a numeric type.
func Zero(t Type) NumericValue {
	return NumericValue{Value: decimal.Zero, WholeNumber: t == WholeNumber}
}

// Match dispatches on the variant of v. Both handlers are required, so
// adding a variant breaks every call site at compile time. An unset (nil)
// value yields the zero T.
func Match[T any](v Value, onBoolean func(BooleanValue) T, onNumeric func(NumericValue) T) T {
	switch x := v.(type) {
	case BooleanValue:
		return onBoolean(x)
	case NumericValue:
		return onNumeric(x)
	}
	var zero T
	return zero
}
