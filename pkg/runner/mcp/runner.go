package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"tableflip.dev/consistency/pkg/app"
	"tableflip.dev/consistency/pkg/metrics"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

// Runner coordinates MCP server startup.
type Runner struct {
	Service *app.Service
	Logger  *zap.Logger
	Name    string
	Version string

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	// MetricsPath mounts the Prometheus handler next to the MCP endpoint
	// when set. HTTP transport only.
	MetricsPath     string
	OnHTTPListening func(net.Addr)
}

// NewServer builds the MCP server with every tool and resource registered.
func NewServer(svc *app.Service, name, version string) *server.MCPServer {
	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read and record daily habit entries. Dates are YYYY-MM-DD; numeric habits take non-negative values."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	s := NewService(svc)
	registerResources(srv, s)
	registerTools(srv, s)
	return srv
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("mcp runner requires a service")
	}
	name := r.Name
	if name == "" {
		name = "consistency"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if err := r.Service.Open(ctx); err != nil {
		return err
	}
	r.followChanges(ctx, log)

	srv := NewServer(r.Service, name, version)

	switch t := r.Transport; t {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv, log)
	case TransportStdio:
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", t)
	}
}

// followChanges reloads the service when another process edits the store.
func (r Runner) followChanges(ctx context.Context, log *zap.Logger) {
	events, err := r.Service.Watch(ctx)
	if err != nil {
		if !errors.Is(err, app.ErrNoPersistence) {
			log.Warn("watch disabled", zap.Error(err))
		}
		return
	}
	go func() {
		for range events {
			if err := r.Service.Reload(ctx); err != nil {
				log.Warn("reload", zap.Error(err))
			}
		}
	}()
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer, log *zap.Logger) error {
	handler := server.NewStreamableHTTPServer(srv)

	path := normalizePath(r.HTTPEndpointPath, "/mcp")

	listenAddr := r.HTTPListenAddr
	if listenAddr == "" {
		listenAddr = "127.0.0.1:8080"
	}

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	if r.MetricsPath != "" {
		mux.Handle(normalizePath(r.MetricsPath, "/metrics"), metrics.Handler())
	}

	httpSrv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	log.Info("mcp listening", zap.String("addr", ln.Addr().String()), zap.String("path", path))

	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	err = httpSrv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func normalizePath(path, def string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return def
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// EndpointURL is the address clients should use for the MCP endpoint served
// on addr. Unspecified hosts are shown as loopback.
func EndpointURL(addr net.Addr, path string) string {
	path = normalizePath(path, "/mcp")
	tcp, ok := addr.(*net.TCPAddr)
	if !ok {
		return "http://" + addr.String() + path
	}
	host := "127.0.0.1"
	if tcp.IP != nil && !tcp.IP.IsUnspecified() {
		host = tcp.IP.String()
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(tcp.Port)) + path
}
