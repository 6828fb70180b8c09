package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

type addArgs struct {
	A float64 `json:"a" jsonschema:"first number to add"`
	B float64 `json:"b" jsonschema:"second number to add"`
}

type countdownArgs struct {
	Start int `json:"start" jsonschema:"number to count down from"`
}

type streamSumArgs struct {
	N int `json:"n" jsonschema:"upper limit for the progressive sum"`
}

// toolset holds the shared dependencies of the demo tool handlers. The step
// delay paces the streaming tools so progress notifications are observable;
// tests set it to zero.
type toolset struct {
	stepDelay time.Duration
	logger    *slog.Logger
}

func registerTools(srv *mcpsdk.Server, ts *toolset) {
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        "add",
		Description: "Add two numbers and return the sum",
	}, ts.add)

	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        "countdown",
		Description: "Count down from a starting number with a progress update per step",
	}, ts.countdown)

	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        "stream_sum",
		Description: "Calculate a progressive sum with progress notifications",
	}, ts.streamSum)
}

func (ts *toolset) add(
	ctx context.Context,
	req *mcpsdk.CallToolRequest,
	args addArgs,
) (*mcpsdk.CallToolResult, any, error) {
	sum := args.A + args.B
	ts.logger.Debug("adding", "a", args.A, "b", args.B, "sum", sum)

	result := map[string]any{"a": args.A, "b": args.B, "sum": sum}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: fmt.Sprintf("%v + %v = %v", args.A, args.B, sum)},
		},
	}, result, nil
}

func (ts *toolset) countdown(
	ctx context.Context,
	req *mcpsdk.CallToolRequest,
	args countdownArgs,
) (*mcpsdk.CallToolResult, any, error) {
	ts.logger.Debug("starting countdown", "start", args.Start)

	for i := args.Start; i >= 1; i-- {
		ts.notifyProgress(ctx, req,
			float64(args.Start-i+1), float64(args.Start),
			fmt.Sprintf("count %d", i))
		if err := ts.pause(ctx); err != nil {
			return nil, nil, err
		}
	}

	result := map[string]any{"done": true, "start": args.Start}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: fmt.Sprintf("countdown from %d complete", args.Start)},
		},
	}, result, nil
}

func (ts *toolset) streamSum(
	ctx context.Context,
	req *mcpsdk.CallToolRequest,
	args streamSumArgs,
) (*mcpsdk.CallToolResult, any, error) {
	ts.logger.Debug("starting stream_sum", "n", args.N)

	total := 0
	for i := 1; i <= args.N; i++ {
		total += i
		ts.notifyProgress(ctx, req,
			float64(i), float64(args.N),
			fmt.Sprintf("computed sum up to %d: %d", i, total))
		if err := ts.pause(ctx); err != nil {
			return nil, nil, err
		}
	}

	ts.logger.Debug("completed stream_sum", "final_sum", total, "steps", args.N)

	result := map[string]any{"final_sum": total, "steps": args.N}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: fmt.Sprintf("final_sum=%d steps=%d", total, args.N)},
		},
	}, result, nil
}

// notifyProgress sends a progress notification to the calling session. Calls
// without a progress token, and direct calls outside a session, are no-ops.
func (ts *toolset) notifyProgress(
	ctx context.Context,
	req *mcpsdk.CallToolRequest,
	progress, total float64,
	message string,
) {
	if req == nil || req.Session == nil || req.Params == nil {
		return
	}
	token := req.Params.GetProgressToken()
	if token == nil {
		return
	}

	err := req.Session.NotifyProgress(ctx, &mcpsdk.ProgressNotificationParams{
		ProgressToken: token,
		Progress:      progress,
		Total:         total,
		Message:       message,
	})
	if err != nil {
		ts.logger.Warn("progress notification failed", "error", err)
	}
}

func (ts *toolset) pause(ctx context.Context) error {
	if ts.stepDelay <= 0 {
		return nil
	}
	select {
	case <-time.After(ts.stepDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
