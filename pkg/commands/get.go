package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/consistency/pkg/commands/options"
	"tableflip.dev/consistency/pkg/habit"
	"tableflip.dev/consistency/pkg/runner/get"
)

func addGet(topLevel *cobra.Command, ro *rootOptions) {
	on := &options.OnOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}
	var list bool

	cmd := &cobra.Command{
		Use:     "get [habit id]",
		Aliases: []string{"show", "ls"},
		Short:   "Show the habit grid, the habit list or one habit's entries",
		Example: `
consistency get
consistency get --days 14 --on yesterday
consistency get --list --show-id
consistency get 2
consistency get --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				io.ID = args[0]
			}
			date, err := on.GetOn(habit.Today())
			if err != nil {
				return oo.HandleError(err)
			}
			days, err := on.GetDays()
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := ro.Service()
			if err != nil {
				return oo.HandleError(err)
			}
			s := get.Get{
				Service: svc,
				On:      date,
				Days:    days,
				HabitID: io.ID,
				List:    list,
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List habits instead of the grid.")
	options.AddOnArgs(cmd, on)
	options.AddDaysArgs(cmd, on)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
