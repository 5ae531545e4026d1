// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"github.com/urfave/cli/v3"

	"github.com/staranto/citectl/internal/meta"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// FilterSpec combines a positional filter argument with --filter.
func FilterSpec(cmd *cli.Command) string {
	filter := cmd.String("filter")
	if arg := cmd.Args().First(); arg != "" {
		if filter != "" {
			return arg + "," + filter
		}
		return arg
	}
	return filter
}
