package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atlanticdynamic/mcpdemo/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// runResolve drives resolveConfig through a parsed CLI command.
func runResolve(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()

	var cfg *config.Config
	var resolveErr error
	cmd := &cli.Command{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, resolveErr = resolveConfig(cmd)
			return nil
		},
	}

	err := cmd.Run(context.Background(), append([]string{"mcpdemo"}, args...))
	require.NoError(t, err)
	return cfg, resolveErr
}

func TestResolveConfig_EnvOnly(t *testing.T) {
	t.Setenv(config.EnvTransport, "streamable-http")
	t.Setenv(config.EnvHost, "0.0.0.0")
	t.Setenv(config.EnvPort, "8080")

	cfg, err := runResolve(t)
	require.NoError(t, err)

	assert.Equal(t, config.TransportStreamableHTTP, cfg.Transport)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
}

func TestResolveConfig_FileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcpdemo.toml")
	require.NoError(t, os.WriteFile(path, []byte("transport = \"stdio\"\nport = 9000\n"), 0o644))

	t.Setenv(config.EnvPort, "9001")

	cfg, err := runResolve(t, "--config", path)
	require.NoError(t, err)

	assert.Equal(t, config.TransportStdio, cfg.Transport)
	assert.Equal(t, 9001, cfg.Port)
}

func TestServerAction_ConfigurationError(t *testing.T) {
	t.Setenv(config.EnvPort, "abc")

	cmd := &cli.Command{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config"},
		},
	}

	result := serverAction(context.Background(), cmd)

	var exitErr cli.ExitCoder
	require.True(t, errors.As(result, &exitErr), "Expected cli.ExitCoder, got %T", result)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.True(t, strings.HasPrefix(exitErr.Error(), "Configuration error:"),
		"diagnostic should start with the configuration error prefix: %q", exitErr.Error())
	assert.Contains(t, exitErr.Error(), "abc")
}

func TestServerAction_InvalidTransportError(t *testing.T) {
	t.Setenv(config.EnvTransport, "SSE")

	cmd := &cli.Command{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config"},
		},
	}

	result := serverAction(context.Background(), cmd)

	var exitErr cli.ExitCoder
	require.True(t, errors.As(result, &exitErr))
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, exitErr.Error(), `"SSE"`)
	assert.Contains(t, exitErr.Error(), "stdio")
	assert.Contains(t, exitErr.Error(), "streamable-http")
}
