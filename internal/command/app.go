// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/staranto/citectl/internal/config"
	"github.com/staranto/citectl/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	cfg, _ := config.Load()

	// The arg[1] immediately following the binary is the citectl subcommand
	// and also the namespace used when retrieving config values.
	if len(args) > 1 {
		cfg.Namespace = args[1]
		config.Config.Namespace = args[1]
	}

	meta := meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
	}

	app := &cli.Command{
		Name:           "citectl",
		Usage:          "Citation style control",
		DefaultCommand: "shell",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "citectl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		CompletionCommandBuilder(app, meta),
		ShellCommandLauncherBuilder(app, meta),
		StylesCommandBuilder(app, meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
