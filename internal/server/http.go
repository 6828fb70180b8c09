package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/atlanticdynamic/mcpdemo/internal/server/finitestate"
	"github.com/robbyt/go-supervisor/runnables/httpserver"
	"github.com/robbyt/go-supervisor/supervisor"
)

var (
	_ supervisor.Runnable  = (*HTTPRunner)(nil)
	_ supervisor.Stateable = (*HTTPRunner)(nil)
)

// HTTPRunner mounts an MCP HTTP handler (SSE or streamable) on a
// go-supervisor HTTP listener and manages its lifecycle.
type HTTPRunner struct {
	addr   string
	name   string
	path   string
	logger *slog.Logger

	runner *httpserver.Runner
}

// HTTPOption is a functional option for configuring the HTTPRunner.
type HTTPOption func(*HTTPRunner)

// WithHTTPLogger sets the logger for the HTTP runner.
func WithHTTPLogger(logger *slog.Logger) HTTPOption {
	return func(r *HTTPRunner) {
		if logger != nil {
			r.logger = logger.WithGroup("http")
		}
	}
}

// NewHTTPRunner creates a runner serving handler at path on addr. The route
// set is fixed for the lifetime of the process; there is no reload path.
func NewHTTPRunner(addr, name, path string, handler http.Handler, opts ...HTTPOption) (*HTTPRunner, error) {
	r := &HTTPRunner{
		addr:   addr,
		name:   name,
		path:   path,
		logger: slog.Default().WithGroup("mcpserver.http"),
	}
	for _, opt := range opts {
		opt(r)
	}

	route, err := httpserver.NewRouteFromHandlerFunc(name, path, handler.ServeHTTP)
	if err != nil {
		return nil, fmt.Errorf("failed to create route for %s: %w", path, err)
	}
	routes := httpserver.Routes{*route}

	configCallback := func() (*httpserver.Config, error) {
		return httpserver.NewConfig(addr, routes)
	}

	runner, err := httpserver.NewRunner(
		httpserver.WithConfigCallback(configCallback),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP server runner: %w", err)
	}
	r.runner = runner

	return r, nil
}

// String implements the supervisor.Runnable interface
func (r *HTTPRunner) String() string {
	return fmt.Sprintf("mcpserver.HTTPRunner[%s %s]", r.name, r.addr)
}

// Run starts the HTTP listener
func (r *HTTPRunner) Run(ctx context.Context) error {
	r.logger.Info("Starting HTTP listener", "address", r.addr, "endpoint", r.path)
	return r.runner.Run(ctx)
}

// Stop stops the HTTP listener
func (r *HTTPRunner) Stop() {
	r.logger.Info("Stopping HTTP listener", "address", r.addr)
	r.runner.Stop()
}

// GetState returns the current state of the listener
func (r *HTTPRunner) GetState() string {
	return r.runner.GetState()
}

// IsRunning reports whether the listener is serving
func (r *HTTPRunner) IsRunning() bool {
	return r.runner.GetState() == finitestate.StatusRunning
}

// GetStateChan returns a channel that emits state changes
func (r *HTTPRunner) GetStateChan(ctx context.Context) <-chan string {
	return r.runner.GetStateChan(ctx)
}
