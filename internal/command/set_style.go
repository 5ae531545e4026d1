// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/citectl/internal/catalog"
	"github.com/staranto/citectl/internal/session"
	"github.com/staranto/citectl/internal/suggest"
)

var (
	ErrNoStyleSpecified = errors.New("no style specified")
	ErrTooManyStyles    = errors.New("you can only specify one style")
	ErrUnsupportedStyle = errors.New("unsupported citation style")
)

// UnsupportedStyleError is returned when a style is not in the catalog.
// Suggestion is the "did you mean" line, if any.
type UnsupportedStyleError struct {
	Style      string
	Suggestion string
}

func (e *UnsupportedStyleError) Error() string {
	msg := fmt.Sprintf("%s `%s'", ErrUnsupportedStyle, e.Style)
	if e.Suggestion != "" {
		msg += "\n\n" + e.Suggestion
	}
	return msg
}

func (e *UnsupportedStyleError) Unwrap() error {
	return ErrUnsupportedStyle
}

// Validator is implemented by shell commands that check their arguments
// before running.
type Validator interface {
	ParseArguments(tokens []string)
	CheckArguments(ctx context.Context) bool
	Err() error
}

// Completer is implemented by shell commands that offer tab completion. The
// int result is the cursor adjustment; 0 leaves the cursor where it is.
type Completer interface {
	Complete(ctx context.Context, buffer string, cursor int) ([]string, int)
}

// SetStyle is the `set style <STYLE>` shell command. It validates a single
// style id against the catalog and makes it the session's active style.
type SetStyle struct {
	session *session.Session
	catalog catalog.Catalog

	args    []string
	err     error
	checked bool
}

var (
	_ Validator = (*SetStyle)(nil)
	_ Completer = (*SetStyle)(nil)
)

// NewSetStyle returns a SetStyle bound to sess. A nil catalog disables
// validation and completion.
func NewSetStyle(sess *session.Session, cat catalog.Catalog) *SetStyle {
	return &SetStyle{session: sess, catalog: cat}
}

// ParseArguments binds every token as a candidate style. There are no flags,
// so "-x" is a style name like any other.
func (s *SetStyle) ParseArguments(tokens []string) {
	s.args = append([]string(nil), tokens...)
	s.err = nil
	s.checked = false
}

// CheckArguments reports whether the parsed arguments name exactly one
// supported style. On failure Err describes the problem.
func (s *SetStyle) CheckArguments(ctx context.Context) bool {
	s.checked = false

	switch {
	case len(s.args) == 0:
		s.err = ErrNoStyleSpecified
		return false
	case len(s.args) > 1:
		s.err = ErrTooManyStyles
		return false
	case strings.TrimSpace(s.args[0]) == "":
		s.err = ErrNoStyleSpecified
		return false
	}

	style := s.args[0]
	styles, err := s.styles(ctx)
	if err != nil {
		// Accept the style unchecked rather than block the user.
		log.WithError(err).Debugf("skipping validation of %q", style)
		s.err = nil
		s.checked = true
		return true
	}

	if !styles.Contains(style) {
		s.err = &UnsupportedStyleError{
			Style:      style,
			Suggestion: suggest.DidYouMean(styles.Sorted(), style),
		}
		return false
	}

	s.err = nil
	s.checked = true
	return true
}

// Err returns the reason for the last failed CheckArguments.
func (s *SetStyle) Err() error {
	return s.err
}

// Execute commits the checked style to the session and returns 0. It returns
// 1 without touching the session when the arguments were not checked.
func (s *SetStyle) Execute(_ context.Context) int {
	if !s.checked || s.session == nil {
		return 1
	}
	s.session.SetStyle(s.args[0])
	log.Debugf("active style is now %q", s.args[0])
	return 0
}

// Run parses, checks and executes tokens. Rejections are written to the
// session's error stream.
func (s *SetStyle) Run(ctx context.Context, tokens []string) int {
	s.ParseArguments(tokens)
	if !s.CheckArguments(ctx) {
		if s.session != nil {
			fmt.Fprintln(s.session.Err, s.err)
		}
		return 1
	}
	return s.Execute(ctx)
}

// Complete returns the styles that start with the last word of buffer, or
// every style when buffer is blank. The cursor position is not used.
func (s *SetStyle) Complete(ctx context.Context, buffer string, _ int) ([]string, int) {
	styles, err := s.styles(ctx)
	if err != nil {
		log.WithError(err).Debug("no style completions")
		return []string{}, 0
	}

	words := strings.Fields(buffer)
	if len(words) == 0 {
		return styles.Sorted(), 0
	}
	prefix := words[len(words)-1]

	candidates := []string{}
	for id := range styles {
		if strings.HasPrefix(id, prefix) {
			candidates = append(candidates, id)
		}
	}
	sort.Strings(candidates)
	return candidates, 0
}

func (s *SetStyle) styles(ctx context.Context) (catalog.Set, error) {
	if s.catalog == nil {
		return nil, fmt.Errorf("%w: no catalog configured", catalog.ErrUnavailable)
	}
	return s.catalog.Styles(ctx)
}
