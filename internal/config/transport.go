package config

import (
	"fmt"
)

// Transport selects the communication channel the MCP runtime serves on.
type Transport string

const (
	// TransportStdio serves the MCP protocol over standard input/output.
	TransportStdio Transport = "stdio"

	// TransportSSE serves the MCP protocol over Server-Sent Events.
	TransportSSE Transport = "sse"

	// TransportStreamableHTTP serves the MCP protocol over chunked HTTP.
	TransportStreamableHTTP Transport = "streamable-http"
)

// ValidTransports returns every accepted transport selector, in the order
// they are enumerated in diagnostics.
func ValidTransports() []Transport {
	return []Transport{TransportStdio, TransportSSE, TransportStreamableHTTP}
}

// ParseTransport validates a raw transport selector. The comparison is
// case-sensitive: "SSE" is rejected, "sse" is accepted.
func ParseTransport(s string) (Transport, error) {
	switch Transport(s) {
	case TransportStdio, TransportSSE, TransportStreamableHTTP:
		return Transport(s), nil
	default:
		return "", fmt.Errorf("%w %q: must be one of %q, %q, %q",
			ErrInvalidTransport, s,
			TransportStdio, TransportSSE, TransportStreamableHTTP)
	}
}

func (t Transport) String() string {
	return string(t)
}

// UsesNetwork reports whether the transport serves over an HTTP listener.
func (t Transport) UsesNetwork() bool {
	return t == TransportSSE || t == TransportStreamableHTTP
}
