package finitestate

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandler() slog.Handler {
	return slog.NewTextHandler(io.Discard, nil)
}

func TestNew(t *testing.T) {
	machine, err := New(testHandler())
	require.NoError(t, err)
	assert.Equal(t, StatusNew, machine.GetState())
}

func TestLifecycleTransitions(t *testing.T) {
	machine, err := New(testHandler())
	require.NoError(t, err)

	require.NoError(t, machine.Transition(StatusBooting))
	require.NoError(t, machine.Transition(StatusRunning))
	assert.Equal(t, StatusRunning, machine.GetState())

	// Booting is not reachable from Running.
	assert.False(t, machine.TransitionBool(StatusBooting))
	assert.Equal(t, StatusRunning, machine.GetState())

	require.NoError(t, machine.TransitionIfCurrentState(StatusRunning, StatusStopping))
	require.NoError(t, machine.Transition(StatusStopped))
	assert.Equal(t, StatusStopped, machine.GetState())
}

func TestSetState(t *testing.T) {
	machine, err := New(testHandler())
	require.NoError(t, err)

	require.NoError(t, machine.SetState(StatusError))
	assert.Equal(t, StatusError, machine.GetState())
}

func TestGetStateChan(t *testing.T) {
	machine, err := New(testHandler())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := machine.GetStateChan(ctx)
	require.NotNil(t, ch)

	// The current state is emitted on registration.
	assert.Equal(t, StatusNew, receiveState(t, ch))

	require.NoError(t, machine.Transition(StatusBooting))
	assert.Equal(t, StatusBooting, receiveState(t, ch))

	require.NoError(t, machine.Transition(StatusRunning))
	assert.Equal(t, StatusRunning, receiveState(t, ch))
}

func receiveState(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case state := <-ch:
		return state
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for state change")
		return ""
	}
}
