package tracker

import (
	"tableflip.dev/consistency/pkg/habit"
)

// Sample returns the demo habits shown on first launch: a yes/no habit, a
// decimal measurement and a whole number count, each with three days of data.
func Sample() []habit.Habit {
	return []habit.Habit{
		habit.New("1", "Wake up early", habit.Boolean, "").
			WithColor(0xFF2196F3).
			WithEntries(map[habit.DateKey]habit.Value{
				"2025-02-08": habit.BooleanValue{Completed: true},
				"2025-02-07": habit.BooleanValue{Completed: true},
				"2025-02-06": habit.BooleanValue{Completed: false},
			}),
		habit.New("2", "Run", habit.Decimal, "miles").
			WithColor(0xFFE91E63).
			WithEntries(map[habit.DateKey]habit.Value{
				"2025-02-08": habit.NormalizeFloat(habit.Decimal, 0.9),
				"2025-02-07": habit.NormalizeFloat(habit.Decimal, 1.2),
				"2025-02-06": habit.NormalizeFloat(habit.Decimal, 1.3),
			}),
		habit.New("3", "Read books", habit.WholeNumber, "pages").
			WithColor(0xFFFF9800).
			WithEntries(map[habit.DateKey]habit.Value{
				"2025-02-08": habit.NormalizeFloat(habit.WholeNumber, 50),
				"2025-02-07": habit.NormalizeFloat(habit.WholeNumber, 38),
				"2025-02-06": habit.NormalizeFloat(habit.WholeNumber, 65),
			}),
	}
}
