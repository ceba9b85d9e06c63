package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/consistency/pkg/commands/options"
	"tableflip.dev/consistency/pkg/habit"
	"tableflip.dev/consistency/pkg/runner/add"
	"tableflip.dev/consistency/pkg/snake"
	"tableflip.dev/consistency/pkg/tracker"
)

func addAdd(topLevel *cobra.Command, ro *rootOptions) {
	ho := &options.HabitOptions{}
	i := &options.InteractiveOptions{}
	oo := &options.OutputOptions{}

	var (
		name string
		t    habit.Type
		unit string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit",
		Example: `
consistency add Meditate
consistency add Run --type decimal --unit miles
consistency add "Read books" -t whole -u pages
consistency add -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if i.Interactive {
				return nil
			}
			if len(args) < 1 {
				return errors.New("requires a habit name")
			}
			name = strings.Join(args, " ")
			var err error
			t, err = ho.GetType()
			unit = ho.Unit
			return err
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !i.Interactive {
				return nil
			}
			p := snake.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
			a, err := p.PromptHabit()
			if err != nil {
				return err
			}
			name, t, unit = a.Name, a.Type, a.Unit
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ro.Service()
			if err != nil {
				return oo.HandleError(err)
			}
			s := add.Add{
				Service: svc,
				Name:    name,
				Type:    t,
				Unit:    unit,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddHabitArgs(cmd, ho)
	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, oo)
	_ = cmd.RegisterFlagCompletionFunc("type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		types := make([]string, 0, len(habit.AllTypes()))
		for _, t := range habit.AllTypes() {
			types = append(types, string(t))
		}
		return types, cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}

func addDemo(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Seed an empty store with sample habits",
		Example: `
consistency --path /tmp/habits demo
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ro.Service()
			if err != nil {
				return err
			}
			s := add.Demo{
				Service: svc,
				Habits:  tracker.Sample(),
				Out:     cmd.OutOrStdout(),
			}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
