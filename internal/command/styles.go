// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/citectl/internal/meta"
	"github.com/staranto/citectl/internal/output"
)

// StylesCommandAction is the action handler for the "styles" subcommand. It
// lists the catalog in the requested output format.
func StylesCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	cat, err := catalogFromFlags(cmd)
	if err != nil {
		return err
	}

	styles, err := cat.Styles(ctx)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}

	return output.Styles(w, styles.Sorted(), "", output.Options{
		Format: cmd.String("output"),
		Filter: FilterSpec(cmd),
		Titles: cmd.Bool("titles"),
		Color:  cmd.Bool("color"),
	})
}

// StylesCommandBuilder constructs the cli.Command for "styles".
func StylesCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "styles",
		Usage:     "list supported citation styles",
		UsageText: `citectl styles [options] [FILTER]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  append(NewCatalogFlags("styles"), NewOutputFlags("styles")...),
		Action: StylesCommandAction,
	}
}
