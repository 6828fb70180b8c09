package client

import (
	"context"
	"log/slog"

	"github.com/gofrs/uuid/v5"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Session represents an active MCP session for calling tools and listing
// capabilities.
type Session struct {
	mcpSession *mcpsdk.ClientSession
	logger     *slog.Logger
}

// Tool describes an available server tool.
type Tool struct {
	Name        string
	Description string
}

// CallToolResult carries the text content of a completed tool call.
type CallToolResult struct {
	Text    []string
	IsError bool
}

// CallTool invokes a tool by name. A fresh progress token is attached so the
// server streams progress notifications back to this session.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (*CallToolResult, error) {
	params := &mcpsdk.CallToolParams{
		Name:      name,
		Arguments: args,
	}
	params.SetProgressToken(uuid.Must(uuid.NewV4()).String())

	s.logger.Debug("calling tool", "tool", name)
	result, err := s.mcpSession.CallTool(ctx, params)
	if err != nil {
		return nil, err
	}

	out := &CallToolResult{IsError: result.IsError}
	for _, content := range result.Content {
		if text, ok := content.(*mcpsdk.TextContent); ok {
			out.Text = append(out.Text, text.Text)
		}
	}
	return out, nil
}

// ListTools returns all tools advertised by the server.
func (s *Session) ListTools(ctx context.Context) ([]Tool, error) {
	result, err := s.mcpSession.ListTools(ctx, &mcpsdk.ListToolsParams{})
	if err != nil {
		return nil, err
	}

	tools := make([]Tool, len(result.Tools))
	for i, mcpTool := range result.Tools {
		tools[i] = Tool{
			Name:        mcpTool.Name,
			Description: mcpTool.Description,
		}
	}
	return tools, nil
}

// Close terminates the MCP session
func (s *Session) Close() error {
	return s.mcpSession.Close()
}
