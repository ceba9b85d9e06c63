package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/consistency/pkg/commands/options"
	"tableflip.dev/consistency/pkg/habit"
	"tableflip.dev/consistency/pkg/runner/track"
	"tableflip.dev/consistency/pkg/snake"
)

func addTrack(topLevel *cobra.Command, ro *rootOptions) {
	for _, c := range []struct {
		op      track.Op
		aliases []string
		short   string
	}{
		{track.Toggle, []string{"done", "check"}, "Flip a yes/no habit for a day"},
		{track.Increment, []string{"increment"}, "Quick complete: toggle yes/no habits, add one step to numeric ones"},
		{track.Decrement, []string{"decrement"}, "Take one step off a numeric habit, stopping at zero"},
		{track.Clear, []string{"unset"}, "Remove the entry for a day"},
	} {
		topLevel.AddCommand(newTrackCommand(ro, c.op, c.aliases, c.short))
	}
	addSet(topLevel, ro)
}

func newTrackCommand(ro *rootOptions, op track.Op, aliases []string, short string) *cobra.Command {
	on := &options.OnOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     fmt.Sprintf("%s <habit id>", op),
		Aliases: aliases,
		Short:   short,
		Example: fmt.Sprintf(`
consistency %[1]s 1
consistency %[1]s 1 --on yesterday
`, op),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := on.GetOn(habit.Today())
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := ro.Service()
			if err != nil {
				return oo.HandleError(err)
			}
			s := track.Track{
				Service: svc,
				Op:      op,
				HabitID: args[0],
				On:      date,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	return cmd
}

func addSet(topLevel *cobra.Command, ro *rootOptions) {
	on := &options.OnOptions{}
	i := &options.InteractiveOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "set <habit id> <value>",
		Short: "Record a value for a numeric habit",
		Example: `
consistency set 2 3.4
consistency set 3 42 --on 2/6
consistency set 2 -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if i.Interactive {
				return cobra.ExactArgs(1)(cmd, args)
			}
			if len(args) != 2 {
				return errors.New("requires a habit id and a value")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := on.GetOn(habit.Today())
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := ro.Service()
			if err != nil {
				return oo.HandleError(err)
			}

			var value string
			if i.Interactive {
				if err := svc.Open(cmd.Context()); err != nil {
					return oo.HandleError(err)
				}
				h, err := svc.Habit(args[0])
				if err != nil {
					return oo.HandleError(err)
				}
				p := snake.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
				v, err := p.PromptValue(h.Type, h.Unit)
				if err != nil {
					return oo.HandleError(err)
				}
				value = v.Display()
			} else {
				value = args[1]
			}

			s := track.Track{
				Service: svc,
				Op:      track.Set,
				HabitID: args[0],
				On:      date,
				Value:   value,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
