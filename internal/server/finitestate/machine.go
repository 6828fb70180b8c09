package finitestate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robbyt/go-fsm/v2"
	"github.com/robbyt/go-fsm/v2/hooks"
	"github.com/robbyt/go-fsm/v2/transitions"
)

const (
	StatusNew      = transitions.StatusNew
	StatusBooting  = transitions.StatusBooting
	StatusRunning  = transitions.StatusRunning
	StatusStopping = transitions.StatusStopping
	StatusStopped  = transitions.StatusStopped
	StatusError    = transitions.StatusError
	StatusUnknown  = transitions.StatusUnknown
)

// TypicalTransitions is a set of standard transitions for a finite state machine.
var TypicalTransitions = transitions.Typical

const broadcastTimeout = 5 * time.Second

// Machine defines the interface for the finite state machine that tracks a
// serve runner's lifecycle states. The abstraction keeps the runners
// testable without a real FSM.
type Machine interface {
	// Transition attempts to transition the state machine to the specified state.
	Transition(state string) error

	// TransitionBool attempts to transition the state machine to the specified state.
	TransitionBool(state string) bool

	// TransitionIfCurrentState attempts to transition the state machine to the specified state
	TransitionIfCurrentState(currentState, newState string) error

	// SetState sets the state of the state machine to the specified state.
	SetState(state string) error

	// GetState returns the current state of the state machine.
	GetState() string

	// GetStateChan returns a channel that emits the state machine's state whenever it changes.
	// The channel is closed when the provided context is canceled.
	GetStateChan(ctx context.Context) <-chan string
}

// RunnerFSM embeds fsm.Machine and adapts its channel registration API to
// the channel-returning shape the runners consume.
type RunnerFSM struct {
	*fsm.Machine
	logger *slog.Logger
}

// GetStateChan allocates a buffered channel, registers it for broadcast and
// returns it. The current state is emitted first, then every change until the
// context is canceled.
func (m *RunnerFSM) GetStateChan(ctx context.Context) <-chan string {
	ch := make(chan string, 10)
	if err := m.Machine.GetStateChan(ctx, ch); err != nil {
		m.logger.Error("Failed to register state channel", "error", err)
		close(ch)
	}
	return ch
}

// New creates a new finite state machine with the specified logger using "standard" state transitions.
func New(handler slog.Handler) (Machine, error) {
	// The hook registry carries the broadcast hook that feeds GetStateChan
	// subscribers.
	registry, err := hooks.NewRegistry(
		hooks.WithLogHandler(handler),
		hooks.WithTransitions(TypicalTransitions),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create hook registry: %w", err)
	}

	machine, err := fsm.New(StatusNew, TypicalTransitions,
		fsm.WithLogHandler(handler),
		fsm.WithCallbackRegistry(registry),
		fsm.WithBroadcastTimeout(broadcastTimeout),
	)
	if err != nil {
		return nil, err
	}

	return &RunnerFSM{
		Machine: machine,
		logger:  slog.New(handler),
	}, nil
}
