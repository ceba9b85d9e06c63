package options

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// MCPOptions select how `consistency mcp` is served.
type MCPOptions struct {
	Transport   string
	Host        string
	Port        int
	Path        string
	MetricsPath string
}

func AddMCPArgs(cmd *cobra.Command, o *MCPOptions) {
	cmd.Flags().StringVar(&o.Transport, "transport", "http",
		"Transport to serve on: http or stdio.")
	cmd.Flags().StringVar(&o.Host, "http-host", "127.0.0.1",
		"Interface the HTTP transport listens on.")
	cmd.Flags().IntVar(&o.Port, "http-port", 8080,
		"Port for the HTTP transport, 0 picks a free one.")
	cmd.Flags().StringVar(&o.Path, "http-path", "/mcp",
		"Path of the MCP endpoint.")
	cmd.Flags().StringVar(&o.MetricsPath, "metrics-path", "",
		"Serve Prometheus metrics at this path on the HTTP listener, empty disables.")
}

// Stdio reports whether the stdio transport was chosen.
func (o *MCPOptions) Stdio() (bool, error) {
	switch strings.ToLower(strings.TrimSpace(o.Transport)) {
	case "", "http":
		return false, nil
	case "stdio":
		return true, nil
	default:
		return false, fmt.Errorf("unsupported transport %q (expected http or stdio)", o.Transport)
	}
}

// Addr is the host:port the HTTP transport listens on.
func (o *MCPOptions) Addr() (string, error) {
	if o.Port < 0 || o.Port > 65535 {
		return "", fmt.Errorf("invalid http-port %d", o.Port)
	}
	host := strings.TrimSpace(o.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, strconv.Itoa(o.Port)), nil
}
