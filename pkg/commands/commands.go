package commands

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
)

func New() *cobra.Command {
	return newRoot(&rootOptions{})
}

func newRoot(ro *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consistency",
		Short: base.Wrap80("Track daily habits on the command line."),
		Long: base.Wrap80("Track yes/no, count and measurement habits day by day. " +
			"Habits are stored as files under --path (default ~/.consistency.db) " +
			"and can be edited from the CLI, the grid UI or an MCP client."),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ro.syncLoggers()
		},
	}

	cmd.PersistentFlags().StringVar(&ro.Path, "path", "",
		"Directory holding the habit store. Overrides the path config key.")
	cmd.PersistentFlags().BoolVarP(&ro.Verbose, "verbose", "v", false,
		"Log debug output to stderr.")

	addCommands(cmd, ro)
	return cmd
}

func addCommands(topLevel *cobra.Command, ro *rootOptions) {
	addUI(topLevel, ro)
	addAdd(topLevel, ro)
	addDemo(topLevel, ro)
	addGet(topLevel, ro)
	addTrack(topLevel, ro)
	addRename(topLevel, ro)
	addRemove(topLevel, ro)
	addMCP(topLevel, ro)
	addKey(topLevel)
	addVersion(topLevel)
}
