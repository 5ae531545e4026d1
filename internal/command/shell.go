// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/citectl/internal/meta"
	"github.com/staranto/citectl/internal/session"
	"github.com/staranto/citectl/internal/shell"
)

// ShellCommandAction is the action handler for the "shell" subcommand. It
// builds the catalog from flags, starts a new session and runs the prompt
// until the user exits.
func ShellCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	cat, err := catalogFromFlags(cmd)
	if err != nil {
		return err
	}

	m.Catalog = cat
	m.Session = session.New(os.Stdout, os.Stderr)

	if style := cmd.String("style"); style != "" {
		s := NewSetStyle(m.Session, m.Catalog)
		s.ParseArguments([]string{style})
		if !s.CheckArguments(ctx) {
			return fmt.Errorf("--style: %w", s.Err())
		}
		s.Execute(ctx)
	}

	sh := shell.New(m.Session, NewShellDispatcher(m), os.Stdin, cmd.String("prompt"))
	return sh.Run(ctx)
}

// ShellCommandLauncherBuilder constructs the cli.Command for "shell", the
// default command.
func ShellCommandLauncherBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "shell",
		Usage:     "interactive citation style shell",
		UsageText: `citectl shell [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  append(NewCatalogFlags("shell"), NewShellFlags()...),
		Action: ShellCommandAction,
	}
}
