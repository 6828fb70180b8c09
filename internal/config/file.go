package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// fileConfig is the TOML shape of the optional config file. Zero values mean
// "not set in the file".
type fileConfig struct {
	Transport string `toml:"transport"`
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
}

// NewFromFile resolves a Config by layering sources, lowest precedence
// first: built-in defaults, then the TOML file at path, then the environment
// snapshot. File values are validated with the same rules as env values.
func NewFromFile(path string, env map[string]string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigFile, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrConfigFile, path, err)
	}

	cfg := defaults()

	if fc.Transport != "" {
		t, err := ParseTransport(fc.Transport)
		if err != nil {
			return nil, err
		}
		cfg.Transport = t
	}

	if fc.Host != "" {
		cfg.Host = fc.Host
	}

	if fc.Port != 0 {
		if err := checkPortRange(fc.Port); err != nil {
			return nil, err
		}
		cfg.Port = fc.Port
	}

	if err := cfg.applyEnv(env); err != nil {
		return nil, err
	}

	return cfg, nil
}
