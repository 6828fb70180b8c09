// Package config resolves the mcpdemo server configuration from the process
// environment, with optional layering over a TOML file. Resolution is pure:
// it reads an explicit environment snapshot, performs no I/O of its own, and
// either returns a fully valid Config or an error describing the first bad
// value.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// Environment variables consulted during resolution.
const (
	EnvTransport = "MCP_TRANSPORT"
	EnvHost      = "MCP_HOST"
	EnvPort      = "MCP_PORT"
)

// Defaults applied when a variable is unset.
const (
	DefaultTransport = TransportSSE
	DefaultHost      = "127.0.0.1"
	DefaultPort      = 8000
)

// Valid TCP port range, inclusive.
const (
	MinPort = 1
	MaxPort = 65535
)

// Config is the resolved server configuration. A Config that exists is
// always valid; invalid input is reported as a resolution error instead.
type Config struct {
	Transport Transport
	Host      string
	Port      int
}

// NewFromEnv resolves a Config from an explicit environment snapshot. A key
// present in the map counts as "set" even when its value is empty, matching
// how a shell exports empty variables.
func NewFromEnv(env map[string]string) (*Config, error) {
	cfg := defaults()
	if err := cfg.applyEnv(env); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewFromOS resolves a Config from the current process environment.
func NewFromOS() (*Config, error) {
	return NewFromEnv(Environ())
}

// Environ snapshots the process environment into a map.
func Environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

func defaults() *Config {
	return &Config{
		Transport: DefaultTransport,
		Host:      DefaultHost,
		Port:      DefaultPort,
	}
}

// applyEnv overlays set environment variables onto the config, validating
// each as it lands. The host is passed through unvalidated.
func (c *Config) applyEnv(env map[string]string) error {
	if raw, ok := env[EnvTransport]; ok {
		t, err := ParseTransport(raw)
		if err != nil {
			return err
		}
		c.Transport = t
	}

	if raw, ok := env[EnvHost]; ok {
		c.Host = raw
	}

	if raw, ok := env[EnvPort]; ok {
		p, err := ParsePort(raw)
		if err != nil {
			return err
		}
		c.Port = p
	}

	return nil
}

// ParsePort parses a raw port selector as a base-10 integer and range-checks
// it. strconv.Atoi rejects surrounding whitespace, so " 8000 " is reported as
// a parse failure rather than silently trimmed.
func ParsePort(s string) (int, error) {
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q: not a valid integer", ErrInvalidPort, s)
	}
	return p, checkPortRange(p)
}

func checkPortRange(p int) error {
	if p < MinPort || p > MaxPort {
		return fmt.Errorf("%w %d: must be between %d and %d",
			ErrInvalidPort, p, MinPort, MaxPort)
	}
	return nil
}

// Addr returns the host:port listen address for the network transports.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *Config) String() string {
	return fmt.Sprintf("Config(transport=%s, host=%s, port=%d)",
		c.Transport, c.Host, c.Port)
}
