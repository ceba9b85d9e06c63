package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/consistency/pkg/habit"
)

// HabitOptions
type HabitOptions struct {
	Type string
	Unit string
}

func AddHabitArgs(cmd *cobra.Command, o *HabitOptions) {
	cmd.Flags().StringVarP(&o.Type, "type", "t", string(habit.Boolean),
		"Habit type: boolean (yes/no), whole (count) or decimal (measurement).")
	cmd.Flags().StringVarP(&o.Unit, "unit", "u", "",
		`Unit label for numeric habits, example: --unit=miles.`)
}

func (o *HabitOptions) GetType() (habit.Type, error) {
	return habit.ParseType(o.Type)
}
