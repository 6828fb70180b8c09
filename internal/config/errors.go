package config

import "errors"

// Configuration resolution errors
var (
	// ErrInvalidTransport is returned when the transport selector is not one
	// of the supported transport names.
	ErrInvalidTransport = errors.New("invalid transport")

	// ErrInvalidPort is returned when the port selector is not an integer or
	// falls outside the valid TCP port range.
	ErrInvalidPort = errors.New("invalid port")

	// ErrConfigFile is returned when the optional TOML config file cannot be
	// read or parsed.
	ErrConfigFile = errors.New("invalid config file")
)
