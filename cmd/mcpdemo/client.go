package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/atlanticdynamic/mcpdemo/internal/client"
	"github.com/urfave/cli/v3"
)

var clientCmd = &cli.Command{
	Name:  "client",
	Usage: "Client operations for the MCP demo server",
	Commands: []*cli.Command{
		{
			Name:  "list",
			Usage: "List the tools advertised by the server",
			Flags: []cli.Flag{
				urlFlag(),
				timeoutFlag(),
			},
			Action: clientListAction,
		},
		{
			Name:  "call",
			Usage: "Call a tool and print its progress notifications as they arrive",
			Flags: []cli.Flag{
				urlFlag(),
				timeoutFlag(),
				&cli.StringFlag{
					Name:     "tool",
					Usage:    "Name of the tool to call",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "args",
					Usage: "Tool arguments as a JSON object",
					Value: "{}",
				},
			},
			Action: clientCallAction,
		},
	},
}

func urlFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "url",
		Usage:   "Server URL for the streamable HTTP endpoint",
		Aliases: []string{"u"},
		Value:   "http://127.0.0.1:8000/mcp",
	}
}

func timeoutFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:  "timeout",
		Usage: "Timeout for the operation in seconds",
		Value: 30,
	}
}

func clientTimeout(ctx context.Context, cmd *cli.Command) (context.Context, context.CancelFunc) {
	t := cmd.Int("timeout")
	if t <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, time.Duration(t)*time.Second)
}

func clientListAction(ctx context.Context, cmd *cli.Command) error {
	SetupLogger(cmd.Root().String("log-format"), cmd.Root().String("log-level"))

	ctx, cancel := clientTimeout(ctx, cmd)
	defer cancel()

	c := client.New(client.Config{
		Name:    "mcpdemo-client",
		Version: cmd.Root().Version,
		Logger:  slog.Default(),
	})

	session, err := c.Connect(ctx, cmd.String("url"))
	if err != nil {
		return cli.Exit(fmt.Errorf("failed to connect: %w", err), 1)
	}
	defer func() {
		if err := session.Close(); err != nil {
			slog.Warn("Failed to close session", "error", err)
		}
	}()

	tools, err := session.ListTools(ctx)
	if err != nil {
		return cli.Exit(fmt.Errorf("failed to list tools: %w", err), 1)
	}

	for _, tool := range tools {
		fmt.Printf("%-14s %s\n", tool.Name, tool.Description)
	}
	return nil
}

func clientCallAction(ctx context.Context, cmd *cli.Command) error {
	SetupLogger(cmd.Root().String("log-format"), cmd.Root().String("log-level"))

	var args map[string]any
	if err := json.Unmarshal([]byte(cmd.String("args")), &args); err != nil {
		return cli.Exit(fmt.Errorf("invalid --args JSON: %w", err), 1)
	}

	ctx, cancel := clientTimeout(ctx, cmd)
	defer cancel()

	c := client.New(client.Config{
		Name:    "mcpdemo-client",
		Version: cmd.Root().Version,
		Logger:  slog.Default(),
		OnProgress: func(progress, total float64, message string) {
			if total > 0 {
				fmt.Printf("progress: %v/%v %s\n", progress, total, message)
			} else {
				fmt.Printf("progress: %v %s\n", progress, message)
			}
		},
	})

	session, err := c.Connect(ctx, cmd.String("url"))
	if err != nil {
		return cli.Exit(fmt.Errorf("failed to connect: %w", err), 1)
	}
	defer func() {
		if err := session.Close(); err != nil {
			slog.Warn("Failed to close session", "error", err)
		}
	}()

	result, err := session.CallTool(ctx, cmd.String("tool"), args)
	if err != nil {
		return cli.Exit(fmt.Errorf("tool call failed: %w", err), 1)
	}

	for _, line := range result.Text {
		fmt.Println(line)
	}
	if result.IsError {
		return cli.Exit("tool returned an error", 1)
	}
	return nil
}
