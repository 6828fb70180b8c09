package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/atlanticdynamic/mcpdemo/internal/server/finitestate"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/robbyt/go-supervisor/supervisor"
)

var (
	_ supervisor.Runnable  = (*StdioRunner)(nil)
	_ supervisor.Stateable = (*StdioRunner)(nil)
)

// StdioRunner serves a compiled MCP server over the process's standard
// input/output pipes. Stdout belongs to the protocol stream while the runner
// is up, so all diagnostics go through the logger (stderr).
type StdioRunner struct {
	mcpServer *mcpsdk.Server
	logger    *slog.Logger
	fsm       finitestate.Machine

	mu        sync.Mutex
	runCancel context.CancelFunc
}

// StdioOption is a functional option for configuring the StdioRunner.
type StdioOption func(*StdioRunner)

// WithStdioLogger sets the logger for the stdio runner.
func WithStdioLogger(logger *slog.Logger) StdioOption {
	return func(r *StdioRunner) {
		if logger != nil {
			r.logger = logger.WithGroup("stdio")
		}
	}
}

// NewStdioRunner creates a runner that serves mcpServer over stdio.
func NewStdioRunner(mcpServer *mcpsdk.Server, opts ...StdioOption) (*StdioRunner, error) {
	if mcpServer == nil {
		return nil, errors.New("MCP server cannot be nil")
	}

	r := &StdioRunner{
		mcpServer: mcpServer,
		logger:    slog.Default().WithGroup("mcpserver.stdio"),
	}
	for _, opt := range opts {
		opt(r)
	}

	fsm, err := finitestate.New(r.logger.WithGroup("fsm").Handler())
	if err != nil {
		return nil, fmt.Errorf("failed to create state machine: %w", err)
	}
	r.fsm = fsm

	return r, nil
}

// String implements the supervisor.Runnable interface
func (r *StdioRunner) String() string {
	return "mcpserver.StdioRunner"
}

// Run serves the MCP protocol over stdio until the context is canceled or
// the peer disconnects.
func (r *StdioRunner) Run(ctx context.Context) error {
	if err := r.fsm.Transition(finitestate.StatusBooting); err != nil {
		return fmt.Errorf("failed to transition to booting state: %w", err)
	}

	runCtx, runCancel := context.WithCancel(ctx)
	defer runCancel()
	r.mu.Lock()
	r.runCancel = runCancel
	r.mu.Unlock()

	if err := r.fsm.Transition(finitestate.StatusRunning); err != nil {
		return fmt.Errorf("failed to transition to running state: %w", err)
	}
	r.logger.Info("Serving MCP over stdio")

	err := r.mcpServer.Run(runCtx, &mcpsdk.StdioTransport{})
	if err != nil && runCtx.Err() == nil {
		r.logger.Error("stdio serve failed", "error", err)
		if stateErr := r.fsm.Transition(finitestate.StatusError); stateErr != nil {
			r.logger.Error("Failed to transition to error state", "error", stateErr)
		}
		return fmt.Errorf("stdio serve failed: %w", err)
	}

	r.logger.Info("Stdio runner shutting down")
	if r.fsm.GetState() != finitestate.StatusStopping {
		if err := r.fsm.Transition(finitestate.StatusStopping); err != nil {
			r.logger.Error("Failed to transition to stopping state", "error", err)
		}
	}
	if err := r.fsm.Transition(finitestate.StatusStopped); err != nil {
		return fmt.Errorf("failed to transition to stopped state: %w", err)
	}

	return nil
}

// Stop implements the supervisor.Runnable interface
func (r *StdioRunner) Stop() {
	r.fsm.TransitionBool(finitestate.StatusStopping)
	r.mu.Lock()
	cancel := r.runCancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// GetState returns the current lifecycle state
func (r *StdioRunner) GetState() string {
	return r.fsm.GetState()
}

// IsRunning reports whether the runner is serving
func (r *StdioRunner) IsRunning() bool {
	return r.fsm.GetState() == finitestate.StatusRunning
}

// GetStateChan returns a channel that emits lifecycle state changes
func (r *StdioRunner) GetStateChan(ctx context.Context) <-chan string {
	return r.fsm.GetStateChan(ctx)
}
