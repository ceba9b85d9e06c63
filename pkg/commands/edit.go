package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/consistency/pkg/runner/edit"
)

func addRename(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "rename <habit id> <name>",
		Short: "Rename a habit",
		Example: `
consistency rename 1 Wake up at six
`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ro.Service()
			if err != nil {
				return err
			}
			s := edit.Rename{
				Service: svc,
				HabitID: args[0],
				Name:    strings.Join(args[1:], " "),
				Out:     cmd.OutOrStdout(),
			}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:     "rm <habit id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a habit and all of its entries",
		Example: `
consistency rm 3
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ro.Service()
			if err != nil {
				return err
			}
			s := edit.Remove{
				Service: svc,
				HabitID: args[0],
				Out:     cmd.OutOrStdout(),
			}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
