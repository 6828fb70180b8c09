package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

var validateCmd = &cli.Command{
	Name:  "validate",
	Usage: "Resolve the server configuration and display it",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path to optional TOML configuration file (environment variables take precedence)",
			Aliases: []string{"c"},
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Configuration error: %v", err), 1)
		}

		fmt.Println("Configuration is valid")
		fmt.Println()
		fmt.Println(cfg.Tree())
		return nil
	},
}
