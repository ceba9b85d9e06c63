// Package habit defines the habit record, its per-day entry values and the
// numeric normalization rules shared by every surface of consistency.
package habit

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Type identifies which value variant a habit records. It is fixed when the
// habit is created.
type Type string

const (
	// Boolean habits record done / not done.
	Boolean Type = "boolean"
	// WholeNumber habits record integer counts (pushups, pages).
	WholeNumber Type = "whole_number"
	// Decimal habits record measurements quantized to one tenth (miles, km).
	Decimal Type = "decimal"
)

// ErrUnknownType is returned by ParseType for unsupported names.
var ErrUnknownType = errors.New("habit: unknown type")

// AllTypes returns the list of supported habit types.
func AllTypes() []Type {
	return []Type{
		Boolean,
		WholeNumber,
		Decimal,
	}
}

var typeAliases = map[string]Type{
	"boolean":      Boolean,
	"bool":         Boolean,
	"yesno":        Boolean,
	"yes/no":       Boolean,
	"whole_number": WholeNumber,
	"whole":        WholeNumber,
	"count":        WholeNumber,
	"int":          WholeNumber,
	"decimal":      Decimal,
	"measurement":  Decimal,
	"float":        Decimal,
}

// Aliases returns the names ParseType accepts for t, sorted.
func (t Type) Aliases() []string {
	var out []string
	for name, at := range typeAliases {
		if at == t {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// ParseType converts a string to a Type. The empty string maps to Boolean,
// the default for new habits.
func ParseType(raw string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return Boolean, nil
	}
	key = strings.ReplaceAll(key, "-", "_")
	if t, ok := typeAliases[key]; ok {
		return t, nil
	}
	return Boolean, fmt.Errorf("%w %q", ErrUnknownType, raw)
}

// MustType parses the input and panics on error. Intended for tests/config.
func MustType(raw string) Type {
	t, err := ParseType(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// Valid reports whether t is one of the supported types.
func (t Type) Valid() bool {
	switch t {
	case Boolean, WholeNumber, Decimal:
		return true
	}
	return false
}

// Numeric reports whether t records NumericValue entries.
func (t Type) Numeric() bool {
	return t == WholeNumber || t == Decimal
}

// DisplayName is the label shown when picking a type.
func (t Type) DisplayName() string {
	switch t {
	case Boolean:
		return "Yes/No"
	case WholeNumber:
		return "Count (1, 2, 3...)"
	case Decimal:
		return "Measurement (1.5, 2.3...)"
	default:
		return string(t)
	}
}

func (t Type) String() string {
	return string(t)
}
