package commands

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"tableflip.dev/consistency/pkg/commands/options"
	"tableflip.dev/consistency/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command, ro *rootOptions) {
	mo := &options.MCPOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve habits to Model Context Protocol clients.",
		Long: `Launch an MCP server that exposes habits, their entries and the
day grid as tools and resources. Edits made elsewhere are picked up
while it runs.`,
		Example: `
consistency mcp
consistency mcp --transport stdio
consistency mcp --http-port 0 --metrics-path /metrics
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stdio, err := mo.Stdio()
			if err != nil {
				return err
			}
			svc, err := ro.Service()
			if err != nil {
				return err
			}

			r := mcp.Runner{
				Service:          svc,
				Logger:           svc.Logger,
				Name:             "consistency",
				Version:          version,
				HTTPEndpointPath: mo.Path,
				MetricsPath:      mo.MetricsPath,
			}
			if stdio {
				r.Transport = mcp.TransportStdio
				return r.Do(cmd.Context())
			}

			addr, err := mo.Addr()
			if err != nil {
				return err
			}
			r.Transport = mcp.TransportHTTP
			r.HTTPListenAddr = addr
			r.OnHTTPListening = func(a net.Addr) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on %s\n", mcp.EndpointURL(a, mo.Path))
			}
			return r.Do(cmd.Context())
		},
	}

	options.AddMCPArgs(cmd, mo)
	topLevel.AddCommand(cmd)
}
