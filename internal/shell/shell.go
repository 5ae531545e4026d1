// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/mattn/go-shellwords"
	"golang.org/x/term"

	"github.com/staranto/citectl/internal/session"
)

// ErrExit is returned by a Dispatcher when the user asks to leave the shell.
var ErrExit = errors.New("exit")

// DefaultPrompt is used when no prompt is configured.
const DefaultPrompt = "citectl> "

// Dispatcher runs one tokenized shell line and supplies completions.
type Dispatcher interface {
	// Dispatch returns the command status. ErrExit ends the shell.
	Dispatch(ctx context.Context, args []string) (int, error)
	// Complete returns candidates for the word under the cursor. line is
	// the text before the cursor.
	Complete(ctx context.Context, line string, pos int) []string
}

// Shell is an interactive read-dispatch loop bound to one session.
type Shell struct {
	Session    *session.Session
	Dispatcher Dispatcher
	In         io.Reader
	Prompt     string

	// Status is the result of the last executed line.
	Status int
}

// New returns a Shell reading from in. A nil in reads stdin.
func New(sess *session.Session, d Dispatcher, in io.Reader, prompt string) *Shell {
	if in == nil {
		in = os.Stdin
	}
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return &Shell{Session: sess, Dispatcher: d, In: in, Prompt: prompt}
}

// Run reads and executes lines until exit, EOF or ctx is done. A terminal on
// stdin gets line editing and tab completion.
func (s *Shell) Run(ctx context.Context) error {
	if f, ok := s.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return s.runTerminal(ctx, f)
	}
	return s.runLines(ctx)
}

// Exec tokenizes and dispatches a single line. Blank lines are a no-op.
func (s *Shell) Exec(ctx context.Context, line string) (int, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		fmt.Fprintf(s.Session.Err, "%v\n", err)
		s.Status = 1
		return s.Status, nil
	}
	if len(args) == 0 {
		return s.Status, nil
	}

	log.Debugf("dispatching %q", args)
	status, err := s.Dispatcher.Dispatch(ctx, args)
	s.Status = status
	return status, err
}

func (s *Shell) runLines(ctx context.Context) error {
	scanner := bufio.NewScanner(s.In)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.Exec(ctx, scanner.Text()); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}
			return err
		}
	}
	return scanner.Err()
}

func (s *Shell) runTerminal(ctx context.Context, f *os.File) error {
	fd := int(f.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to set terminal raw mode: %w", err)
	}
	defer term.Restore(fd, state) //nolint:errcheck

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{f, s.Session.Out}, s.Prompt)

	// Raw mode needs the terminal to translate newlines.
	out, errOut := s.Session.Out, s.Session.Err
	s.Session.Out, s.Session.Err = t, t
	defer func() { s.Session.Out, s.Session.Err = out, errOut }()

	t.AutoCompleteCallback = func(line string, pos int, key rune) (string, int, bool) {
		if key != '\t' {
			return "", 0, false
		}
		head := line[:pos]
		candidates := s.Dispatcher.Complete(ctx, head, pos)
		newHead, listing := applyCompletion(head, candidates)
		if len(listing) > 0 {
			fmt.Fprintln(t, strings.Join(listing, "  "))
		}
		return newHead + line[pos:], len(newHead), true
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := t.ReadLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(t)
			return nil
		}
		if err != nil {
			return err
		}
		if _, err := s.Exec(ctx, line); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}
			return err
		}
	}
}

// applyCompletion replaces the partial word at the end of head. A single
// candidate is inserted whole with a trailing space. Several candidates are
// returned for listing and head is extended to their common prefix.
func applyCompletion(head string, candidates []string) (string, []string) {
	partial := head[strings.LastIndexAny(head, " \t")+1:]
	base := head[:len(head)-len(partial)]

	switch len(candidates) {
	case 0:
		return head, nil
	case 1:
		return base + candidates[0] + " ", nil
	}

	if prefix := commonPrefix(candidates); len(prefix) > len(partial) {
		return base + prefix, candidates
	}
	return head, candidates
}

func commonPrefix(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	prefix := ss[0]
	for _, s := range ss[1:] {
		for !strings.HasPrefix(s, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}
