package habit

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// CurrentSchema tags serialized habits so readers can upgrade old files.
const CurrentSchema = "consistency/v1"

type wireHabit struct {
	Schema  string                `json:"schema,omitempty"`
	ID      string                `json:"id"`
	Name    string                `json:"name"`
	Color   uint32                `json:"color"`
	Type    Type                  `json:"type"`
	Unit    string                `json:"unit,omitempty"`
	Entries map[DateKey]wireValue `json:"entries,omitempty"`
}

type wireValue struct {
	Kind      Kind             `json:"kind"`
	Completed *bool            `json:"completed,omitempty"`
	Value     *decimal.Decimal `json:"value,omitempty"`
	Whole     *bool            `json:"whole,omitempty"`
}

// MarshalJSON encodes the habit with tagged entry values.
func (h Habit) MarshalJSON() ([]byte, error) {
	w := wireHabit{
		Schema: CurrentSchema,
		ID:     h.ID,
		Name:   h.Name,
		Color:  h.Color,
		Type:   h.Type,
		Unit:   h.Unit,
	}
	if len(h.entries) > 0 {
		w.Entries = make(map[DateKey]wireValue, len(h.entries))
		for k, v := range h.entries {
			wv, err := encodeValue(v)
			if err != nil {
				return nil, fmt.Errorf("habit %s entry %s: %w", h.ID, k, err)
			}
			w.Entries[k] = wv
		}
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a habit written by MarshalJSON.
func (h *Habit) UnmarshalJSON(b []byte) error {
	var w wireHabit
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.Schema != "" && w.Schema != CurrentSchema {
		return fmt.Errorf("habit: unsupported schema %q", w.Schema)
	}
	entries := make(map[DateKey]Value, len(w.Entries))
	for k, wv := range w.Entries {
		v, err := decodeValue(wv)
		if err != nil {
			return fmt.Errorf("habit %s entry %s: %w", w.ID, k, err)
		}
		entries[k] = v
	}
	*h = Habit{
		ID:      w.ID,
		Name:    w.Name,
		Color:   w.Color,
		Type:    w.Type,
		Unit:    w.Unit,
		entries: entries,
	}
	return nil
}

// MarshalValue encodes a single entry value.
func MarshalValue(v Value) ([]byte, error) {
	wv, err := encodeValue(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wv)
}

// UnmarshalValue decodes a single entry value.
func UnmarshalValue(b []byte) (Value, error) {
	var wv wireValue
	if err := json.Unmarshal(b, &wv); err != nil {
		return nil, err
	}
	return decodeValue(wv)
}

func encodeValue(v Value) (wireValue, error) {
	switch x := v.(type) {
	case BooleanValue:
		completed := x.Completed
		return wireValue{Kind: KindBoolean, Completed: &completed}, nil
	case NumericValue:
		value := x.Value
		whole := x.WholeNumber
		return wireValue{Kind: KindNumeric, Value: &value, Whole: &whole}, nil
	default:
		return wireValue{}, fmt.Errorf("unsupported value %T", v)
	}
}

func decodeValue(wv wireValue) (Value, error) {
	switch wv.Kind {
	case KindBoolean:
		return BooleanValue{Completed: wv.Completed != nil && *wv.Completed}, nil
	case KindNumeric:
		if wv.Value == nil {
			return nil, fmt.Errorf("numeric entry without value")
		}
		return NumericValue{Value: *wv.Value, WholeNumber: wv.Whole != nil && *wv.Whole}, nil
	default:
		return nil, fmt.Errorf("unknown entry kind %q", wv.Kind)
	}
}
