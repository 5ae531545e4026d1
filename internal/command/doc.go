// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package command defines the CLI command set for citectl. It wires flags,
// validators, actions, and shell completion for subcommands, and the
// command tree dispatched by the interactive shell.
package command
