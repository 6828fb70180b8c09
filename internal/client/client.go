// Package client provides a thin abstraction layer around the MCP SDK client
// for calling the demo server over streamable HTTP. It isolates the CLI from
// the SDK's API surface and surfaces progress notifications as a plain
// callback.
package client

import (
	"context"
	"log/slog"
	"net/http"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ProgressFunc receives progress notifications emitted by a server tool.
// total is zero when the server did not report one.
type ProgressFunc func(progress, total float64, message string)

// Config carries the dependencies for creating a new Client.
type Config struct {
	// Name and Version identify this client to the server.
	Name    string
	Version string

	// Logger receives client diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// OnProgress, when set, is invoked for each progress notification.
	OnProgress ProgressFunc

	// HTTPClient overrides the HTTP client used by the transport.
	HTTPClient *http.Client
}

// Client wraps an MCP SDK client configured for the demo server.
type Client struct {
	cfg       Config
	logger    *slog.Logger
	mcpClient *mcpsdk.Client
}

// New creates a Client from the provided config.
func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.WithGroup("mcpclient")

	opts := &mcpsdk.ClientOptions{}
	if cfg.OnProgress != nil {
		onProgress := cfg.OnProgress
		opts.ProgressNotificationHandler = func(ctx context.Context, req *mcpsdk.ProgressNotificationClientRequest) {
			p := req.Params
			onProgress(p.Progress, p.Total, p.Message)
		}
	}

	impl := &mcpsdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}

	return &Client{
		cfg:       cfg,
		logger:    logger,
		mcpClient: mcpsdk.NewClient(impl, opts),
	}
}

// Connect establishes an MCP session with the server at url over the
// streamable HTTP transport. The caller owns the returned session and must
// Close it.
func (c *Client) Connect(ctx context.Context, url string) (*Session, error) {
	transport := &mcpsdk.StreamableClientTransport{
		Endpoint:   url,
		HTTPClient: c.cfg.HTTPClient,
	}

	c.logger.Debug("connecting", "url", url)
	mcpSession, err := c.mcpClient.Connect(ctx, transport, nil)
	if err != nil {
		return nil, err
	}

	return &Session{mcpSession: mcpSession, logger: c.logger}, nil
}
