package commands

import (
	"github.com/spf13/cobra"

	teaui "tableflip.dev/consistency/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the habit grid",
		Example: `
consistency ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ro.Service()
			if err != nil {
				return err
			}
			i := teaui.UI{Service: svc}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
