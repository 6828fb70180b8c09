package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromEnv_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewFromEnv(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, TransportSSE, cfg.Transport)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 8000, cfg.Port)
}

func TestNewFromEnv_ValidTransports(t *testing.T) {
	t.Parallel()

	for _, transport := range []string{"stdio", "sse", "streamable-http"} {
		t.Run(transport, func(t *testing.T) {
			t.Parallel()

			cfg, err := NewFromEnv(map[string]string{EnvTransport: transport})
			require.NoError(t, err)
			assert.Equal(t, transport, cfg.Transport.String())
		})
	}
}

func TestNewFromEnv_InvalidTransport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{"unknown name", "invalid"},
		{"wrong case", "SSE"},
		{"empty but set", ""},
		{"surrounding whitespace", " sse "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := NewFromEnv(map[string]string{EnvTransport: tc.value})
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, ErrInvalidTransport)

			// The diagnostic names the rejected value and lists every option.
			assert.Contains(t, err.Error(), `"`+tc.value+`"`)
			assert.Contains(t, err.Error(), "stdio")
			assert.Contains(t, err.Error(), `"sse"`)
			assert.Contains(t, err.Error(), "streamable-http")
		})
	}
}

func TestNewFromEnv_PortParseFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{"letters", "abc"},
		{"empty but set", ""},
		{"fractional", "80.80"},
		{"surrounding whitespace", " 8000 "},
		{"signed with letters", "+8000x"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := NewFromEnv(map[string]string{EnvPort: tc.value})
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, ErrInvalidPort)
			assert.Contains(t, err.Error(), tc.value)
			assert.Contains(t, err.Error(), "not a valid integer")
		})
	}
}

func TestNewFromEnv_PortRange(t *testing.T) {
	t.Parallel()

	t.Run("below minimum", func(t *testing.T) {
		t.Parallel()

		_, err := NewFromEnv(map[string]string{EnvPort: "0"})
		require.ErrorIs(t, err, ErrInvalidPort)
		assert.Contains(t, err.Error(), "0")
		assert.Contains(t, err.Error(), "between 1 and 65535")
	})

	t.Run("above maximum", func(t *testing.T) {
		t.Parallel()

		_, err := NewFromEnv(map[string]string{EnvPort: "65536"})
		require.ErrorIs(t, err, ErrInvalidPort)
		assert.Contains(t, err.Error(), "65536")
	})

	t.Run("way above maximum", func(t *testing.T) {
		t.Parallel()

		_, err := NewFromEnv(map[string]string{EnvPort: "99999"})
		require.ErrorIs(t, err, ErrInvalidPort)
		assert.Contains(t, err.Error(), "99999")
	})

	t.Run("minimum boundary", func(t *testing.T) {
		t.Parallel()

		cfg, err := NewFromEnv(map[string]string{EnvPort: "1"})
		require.NoError(t, err)
		assert.Equal(t, 1, cfg.Port)
	})

	t.Run("maximum boundary", func(t *testing.T) {
		t.Parallel()

		cfg, err := NewFromEnv(map[string]string{EnvPort: "65535"})
		require.NoError(t, err)
		assert.Equal(t, 65535, cfg.Port)
	})
}

func TestNewFromEnv_HostUnvalidated(t *testing.T) {
	t.Parallel()

	for _, host := range []string{"0.0.0.0", "localhost", "::1", ""} {
		cfg, err := NewFromEnv(map[string]string{EnvHost: host})
		require.NoError(t, err)
		assert.Equal(t, host, cfg.Host)
	}
}

func TestNewFromEnv_FullScenario(t *testing.T) {
	t.Parallel()

	cfg, err := NewFromEnv(map[string]string{
		EnvTransport: "streamable-http",
		EnvHost:      "0.0.0.0",
		EnvPort:      "8080",
	})
	require.NoError(t, err)

	assert.Equal(t, TransportStreamableHTTP, cfg.Transport)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestNewFromOS(t *testing.T) {
	t.Setenv(EnvTransport, "stdio")
	t.Setenv(EnvHost, "localhost")
	t.Setenv(EnvPort, "5000")

	cfg, err := NewFromOS()
	require.NoError(t, err)

	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5000, cfg.Port)
}

func TestEnviron(t *testing.T) {
	t.Setenv("MCPDEMO_TEST_SENTINEL", "sentinel-value")

	env := Environ()
	assert.Equal(t, "sentinel-value", env["MCPDEMO_TEST_SENTINEL"])
}

func TestConfig_Addr(t *testing.T) {
	t.Parallel()

	cfg := &Config{Transport: TransportSSE, Host: "::1", Port: 9000}
	assert.Equal(t, "[::1]:9000", cfg.Addr())
}

func TestConfig_String(t *testing.T) {
	t.Parallel()

	cfg := &Config{Transport: TransportStdio, Host: "localhost", Port: 3000}
	s := cfg.String()

	assert.Contains(t, s, "stdio")
	assert.Contains(t, s, "localhost")
	assert.Contains(t, s, "3000")
}
