// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/citectl/internal/meta"
	"github.com/staranto/citectl/internal/output"
	"github.com/staranto/citectl/internal/shell"
	"github.com/staranto/citectl/internal/suggest"
)

// properties are the session settings reachable through set and get.
var properties = []string{"style"}

// ShellCommandBuilder constructs the command tree for one shell line. A tree
// is single use, so the dispatcher builds a fresh one per line.
func ShellCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "citectl",
		Usage:     "citation style shell",
		UsageText: "<command> [arguments]",
		Metadata: map[string]any{
			"meta": m,
		},
		Writer:    m.Session.Out,
		ErrWriter: m.Session.Err,
		// Failures are reported by the dispatcher and must never exit.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		OnUsageError:   shellUsageError,
		Commands: []*cli.Command{
			ExitCommandBuilder(m),
			GetCommandBuilder(m),
			SetCommandBuilder(m),
			StylesShellCommandBuilder(m),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return nil
			}
			return cli.Exit(unknownMessage("command", name, shellCommandNames(cmd.Root())), 1)
		},
	}
}

// SetCommandBuilder constructs "set <property> ...".
func SetCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:         "set",
		Usage:        "change a session setting",
		UsageText:    "set style <STYLE>",
		Metadata:     map[string]any{"meta": m},
		OnUsageError: shellUsageError,
		Commands: []*cli.Command{
			SetStyleCommandBuilder(m),
		},
		Action: propertyAction("set style <STYLE>"),
	}
}

// SetStyleCommandBuilder constructs "set style <STYLE>". Flag parsing and
// the built-in help are off so every token, "help" included, reaches the
// style validator.
func SetStyleCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:            "style",
		Usage:           "select the active citation style",
		UsageText:       "set style <STYLE>",
		Metadata:        map[string]any{"meta": m},
		SkipFlagParsing: true,
		HideHelp:        true,
		HideHelpCommand: true,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			m := GetMeta(cmd)
			if code := NewSetStyle(m.Session, m.Catalog).Run(ctx, cmd.Args().Slice()); code != 0 {
				return cli.Exit("", code)
			}
			return nil
		},
	}
}

// GetCommandBuilder constructs "get <property>".
func GetCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:         "get",
		Usage:        "show a session setting",
		UsageText:    "get style",
		Metadata:     map[string]any{"meta": m},
		OnUsageError: shellUsageError,
		Commands: []*cli.Command{
			{
				Name:      "style",
				Usage:     "show the active citation style",
				UsageText: "get style",
				Metadata:  map[string]any{"meta": m},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					m := GetMeta(cmd)
					if style, ok := m.Session.Style(); ok {
						fmt.Fprintln(m.Session.Out, style)
						return nil
					}
					fmt.Fprintln(m.Session.Out, "no style set")
					return nil
				},
			},
		},
		Action: propertyAction("get style"),
	}
}

// StylesShellCommandBuilder constructs "styles [FILTER]", which lists the
// catalog with the active style marked.
func StylesShellCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:         "styles",
		Usage:        "list supported citation styles",
		UsageText:    "styles [options] [FILTER]",
		Metadata:     map[string]any{"meta": m},
		Flags:        NewOutputFlags("styles"),
		OnUsageError: shellUsageError,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			m := GetMeta(cmd)
			if m.Catalog == nil {
				return cli.Exit("no style catalog configured", 1)
			}
			styles, err := m.Catalog.Styles(ctx)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			active, _ := m.Session.Style()
			if err := output.Styles(m.Session.Out, styles.Sorted(), active, output.Options{
				Format: cmd.String("output"),
				Filter: FilterSpec(cmd),
				Titles: cmd.Bool("titles"),
				Color:  cmd.Bool("color"),
			}); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
	}
}

// ExitCommandBuilder constructs "exit", also reachable as "quit".
func ExitCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:     "exit",
		Aliases:  []string{"quit"},
		Usage:    "leave the shell",
		Metadata: map[string]any{"meta": m},
		Action: func(context.Context, *cli.Command) error {
			return shell.ErrExit
		},
	}
}

func propertyAction(usage string) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		prop := cmd.Args().First()
		if prop == "" {
			return cli.Exit("usage: "+usage, 1)
		}
		return cli.Exit(unknownMessage("property", prop, properties), 1)
	}
}

func shellUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return cli.Exit(err.Error(), 1)
}

// unknownMessage reports name as an unknown kind, with suggestions from
// candidates when any are close.
func unknownMessage(kind, name string, candidates []string) string {
	msg := fmt.Sprintf("unknown %s `%s'", kind, name)
	if s := suggest.DidYouMean(candidates, name); s != "" {
		msg += "\n\n" + s
	}
	return msg
}

// shellCommandNames returns the sorted command names and aliases of root,
// including the built-in help.
func shellCommandNames(root *cli.Command) []string {
	names := []string{"help"}
	for _, c := range root.Commands {
		for _, n := range append([]string{c.Name}, c.Aliases...) {
			if !slices.Contains(names, n) {
				names = append(names, n)
			}
		}
	}
	slices.Sort(names)
	return names
}

// ShellDispatcher runs shell lines through the shell command tree. It
// implements shell.Dispatcher.
type ShellDispatcher struct {
	meta meta.Meta
}

var _ shell.Dispatcher = (*ShellDispatcher)(nil)

// NewShellDispatcher returns a dispatcher for the session and catalog in m.
func NewShellDispatcher(m meta.Meta) *ShellDispatcher {
	return &ShellDispatcher{meta: m}
}

// Dispatch runs args and returns the command status. Errors other than
// shell.ErrExit are written to the session's error stream.
func (d *ShellDispatcher) Dispatch(ctx context.Context, args []string) (int, error) {
	root := ShellCommandBuilder(d.meta)
	err := root.Run(ctx, append([]string{root.Name}, args...))
	if err == nil {
		return 0, nil
	}
	if errors.Is(err, shell.ErrExit) {
		return 0, shell.ErrExit
	}

	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		if msg := ec.Error(); msg != "" {
			fmt.Fprintln(d.meta.Session.Err, msg)
		}
		return ec.ExitCode(), nil
	}

	log.WithError(err).Debug("shell command failed")
	fmt.Fprintln(d.meta.Session.Err, err)
	return 1, nil
}

// Complete returns candidates for the word ending at pos. Command words and
// property names complete from the command tree, and "set style" arguments
// complete from the catalog.
func (d *ShellDispatcher) Complete(ctx context.Context, line string, pos int) []string {
	if pos >= 0 && pos < len(line) {
		line = line[:pos]
	}
	words := strings.Fields(line)
	trailing := line == "" || strings.HasSuffix(line, " ") || strings.HasSuffix(line, "\t")

	// Index of the word being completed.
	current := len(words)
	if !trailing {
		current--
	}
	partial := ""
	if !trailing {
		partial = words[current]
	}

	switch {
	case current == 0:
		root := ShellCommandBuilder(d.meta)
		return withPrefix(shellCommandNames(root), partial)
	case current == 1 && (words[0] == "set" || words[0] == "get"):
		return withPrefix(properties, partial)
	case current == 2 && words[0] == "set" && words[1] == "style":
		candidates, _ := NewSetStyle(d.meta.Session, d.meta.Catalog).Complete(ctx, partial, len(partial))
		return candidates
	}
	return nil
}

func withPrefix(candidates []string, prefix string) []string {
	result := []string{}
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			result = append(result, c)
		}
	}
	return result
}
