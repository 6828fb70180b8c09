package server

import "errors"

var (
	// ErrNilConfig is returned when a Server is constructed without a
	// resolved configuration.
	ErrNilConfig = errors.New("config cannot be nil")

	// ErrUnknownTransport is returned when the resolved transport has no
	// matching serve runnable. Config validation makes this unreachable in
	// practice.
	ErrUnknownTransport = errors.New("unknown transport")
)
