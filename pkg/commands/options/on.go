package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/consistency/pkg/app"
	"tableflip.dev/consistency/pkg/habit"
	"tableflip.dev/consistency/pkg/timeutil"
)

const layoutShort = "1/2"

// OnOptions
type OnOptions struct {
	OnString   string
	DaysString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2025-2-8", --on="2/8", --on=yesterday or --on=-3.`)
}

func AddDaysArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.DaysString, "days", timeutil.DefaultSpan,
		`Days to show, ending on the --on date, example: --days=10 or --days=2w.`)
}

// GetDays parses --days.
func (o *OnOptions) GetDays() (int, error) {
	days, _, err := timeutil.ParseSpan(o.DaysString)
	return days, err
}

// GetOn resolves --on against today. Besides the forms app.ResolveDate
// understands it accepts "M/D", taken as the latest such date not after today.
func (o *OnOptions) GetOn(today habit.DateKey) (habit.DateKey, error) {
	key, err := app.ResolveDate(o.OnString, today)
	if err == nil {
		return key, nil
	}
	t, perr := time.Parse(layoutShort, o.OnString)
	if perr != nil {
		return "", err
	}
	year := today.Time().Year()
	key = habit.KeyOf(time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
	// Habits are logged after the fact, so 12/30 typed on 1/2 means last year.
	if key > today {
		key = habit.KeyOf(time.Date(year-1, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
	}
	return key, nil
}
