// Package server assembles the MCP demo server and the supervisor runnables
// that serve it on the configured transport. The MCP protocol itself (wire
// format, sessions, schema generation) is owned by the MCP SDK; this package
// only registers the demo tools and plugs the SDK's transports into the
// process lifecycle.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/atlanticdynamic/mcpdemo/internal/config"
	"github.com/gofrs/uuid/v5"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/robbyt/go-supervisor/supervisor"
)

const (
	serverName = "mcp-protocol-demo"

	// Endpoint paths for the network transports.
	ssePath        = "/sse"
	streamableHTTP = "/mcp"

	defaultStepDelay = 500 * time.Millisecond
)

// Server wires the demo tools into an MCP server for the resolved config.
type Server struct {
	cfg       *config.Config
	logger    *slog.Logger
	version   string
	stepDelay time.Duration
	bootID    uuid.UUID

	mcp *mcpsdk.Server
}

// Option is a functional option for configuring the Server.
type Option func(*Server)

// WithLogger sets the logger used by the server and its tool handlers.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithVersion sets the version reported in the MCP implementation info.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithStepDelay overrides the pacing delay of the streaming tools.
func WithStepDelay(d time.Duration) Option {
	return func(s *Server) {
		s.stepDelay = d
	}
}

// New compiles an MCP server with the demo tools registered. The returned
// Server does not listen yet; Runnables supplies the serve lifecycle.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	s := &Server{
		cfg:       cfg,
		logger:    slog.Default().WithGroup("mcpserver"),
		version:   "dev",
		stepDelay: defaultStepDelay,
		bootID:    uuid.Must(uuid.NewV4()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("boot_id", s.bootID)

	impl := &mcpsdk.Implementation{
		Name:    serverName,
		Version: s.version,
	}
	s.mcp = mcpsdk.NewServer(impl, nil)
	registerTools(s.mcp, &toolset{
		stepDelay: s.stepDelay,
		logger:    s.logger.WithGroup("tools"),
	})

	s.logger.Debug("compiled MCP server",
		"name", serverName,
		"version", s.version,
		"transport", cfg.Transport)

	return s, nil
}

// MCP exposes the compiled MCP server, mainly for tests and embedding.
func (s *Server) MCP() *mcpsdk.Server {
	return s.mcp
}

// BootID returns the unique identifier of this server instance.
func (s *Server) BootID() uuid.UUID {
	return s.bootID
}

// Runnables returns the supervisor runnables that serve the configured
// transport. The stdio transport runs the SDK directly over the process
// pipes; the network transports mount an SDK HTTP handler on a listener.
func (s *Server) Runnables() ([]supervisor.Runnable, error) {
	switch s.cfg.Transport {
	case config.TransportStdio:
		r, err := NewStdioRunner(s.mcp, WithStdioLogger(s.logger))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdio runner: %w", err)
		}
		return []supervisor.Runnable{r}, nil

	case config.TransportSSE:
		handler := mcpsdk.NewSSEHandler(func(*http.Request) *mcpsdk.Server {
			return s.mcp
		}, nil)
		return s.httpRunnables("sse", ssePath, handler)

	case config.TransportStreamableHTTP:
		handler := mcpsdk.NewStreamableHTTPHandler(func(*http.Request) *mcpsdk.Server {
			return s.mcp
		}, nil)
		return s.httpRunnables("streamable-http", streamableHTTP, handler)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransport, s.cfg.Transport)
	}
}

func (s *Server) httpRunnables(name, path string, handler http.Handler) ([]supervisor.Runnable, error) {
	r, err := NewHTTPRunner(s.cfg.Addr(), name, path, handler, WithHTTPLogger(s.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP runner: %w", err)
	}
	return []supervisor.Runnable{r}, nil
}
