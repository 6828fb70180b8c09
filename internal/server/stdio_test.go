package server

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/atlanticdynamic/mcpdemo/internal/server/finitestate"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStdioRunner(t *testing.T) {
	t.Parallel()

	t.Run("nil server", func(t *testing.T) {
		t.Parallel()

		runner, err := NewStdioRunner(nil)
		require.Error(t, err)
		assert.Nil(t, runner)
	})

	t.Run("valid server", func(t *testing.T) {
		t.Parallel()

		mcpServer := mcpsdk.NewServer(&mcpsdk.Implementation{Name: "test", Version: "0.0.0"}, nil)

		runner, err := NewStdioRunner(mcpServer)
		require.NoError(t, err)
		assert.Equal(t, "mcpserver.StdioRunner", runner.String())
		assert.Equal(t, finitestate.StatusNew, runner.GetState())
		assert.False(t, runner.IsRunning())
	})

	t.Run("stop before run is a no-op", func(t *testing.T) {
		t.Parallel()

		mcpServer := mcpsdk.NewServer(&mcpsdk.Implementation{Name: "test", Version: "0.0.0"}, nil)

		runner, err := NewStdioRunner(mcpServer)
		require.NoError(t, err)

		runner.Stop()
		assert.False(t, runner.IsRunning())
	})
}

func TestStdioRunner_ConcurrentStop(t *testing.T) {
	t.Parallel()

	mcpServer := mcpsdk.NewServer(&mcpsdk.Implementation{Name: "test", Version: "0.0.0"}, nil)

	runner, err := NewStdioRunner(mcpServer)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Stop races with Run's startup; both touch the cancel func.
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = runner.Run(ctx)
	}()

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runner.Stop()
		}()
	}
	wg.Wait()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
	assert.False(t, runner.IsRunning())
}
