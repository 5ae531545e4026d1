// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/citectl/internal/catalog"
	"github.com/staranto/citectl/internal/meta"
	"github.com/staranto/citectl/internal/session"
	"github.com/staranto/citectl/internal/shell"
)

func newTestDispatcher(cat catalog.Catalog) (*ShellDispatcher, *session.Session, *bytes.Buffer, *bytes.Buffer) {
	sess, out, errOut := newTestSession()
	d := NewShellDispatcher(meta.Meta{
		Context: context.Background(),
		Catalog: cat,
		Session: sess,
	})
	return d, sess, out, errOut
}

func TestDispatch_SetStyle(t *testing.T) {
	d, sess, _, errOut := newTestDispatcher(staticCatalog("apa", "ieee", "chicago"))

	status, err := d.Dispatch(context.Background(), []string{"set", "style", "ieee"})
	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Empty(t, errOut.String())

	got, ok := sess.Style()
	assert.True(t, ok)
	assert.Equal(t, "ieee", got)
}

func TestDispatch_SetStyleRejected(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing", []string{"set", "style"}, "no style specified\n"},
		{"too many", []string{"set", "style", "apa", "ieee"}, "you can only specify one style\n"},
		{"suggestion", []string{"set", "style", "aap"}, "unsupported citation style `aap'\n\ndid you mean: apa\n"},
		{"flag-like", []string{"set", "style", "--help"}, "unsupported citation style `--help'\n"},
		{"short flag-like", []string{"set", "style", "-h"}, "unsupported citation style `-h'\n"},
		{"help word", []string{"set", "style", "help"}, "unsupported citation style `help'\n"},
		{"empty token", []string{"set", "style", ""}, "no style specified\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, sess, _, errOut := newTestDispatcher(staticCatalog("apa", "ieee", "chicago"))

			status, err := d.Dispatch(context.Background(), tt.args)
			require.NoError(t, err)
			assert.Equal(t, 1, status)
			assert.Equal(t, tt.want, errOut.String())

			_, ok := sess.Style()
			assert.False(t, ok)
		})
	}
}

func TestDispatch_SetStyleHelpWordCommitted(t *testing.T) {
	d, sess, out, _ := newTestDispatcher(staticCatalog("apa", "help"))

	status, err := d.Dispatch(context.Background(), []string{"set", "style", "help"})
	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Empty(t, out.String())

	got, ok := sess.Style()
	assert.True(t, ok)
	assert.Equal(t, "help", got)
}

func TestDispatch_EmptyStyleWithCatalogDown(t *testing.T) {
	d, sess, _, errOut := newTestDispatcher(failingCatalog())

	status, err := d.Dispatch(context.Background(), []string{"set", "style", ""})
	require.NoError(t, err)
	assert.Equal(t, 1, status)
	assert.Equal(t, "no style specified\n", errOut.String())

	_, ok := sess.Style()
	assert.False(t, ok)
}

func TestDispatch_GetStyle(t *testing.T) {
	d, _, out, _ := newTestDispatcher(staticCatalog("apa"))
	ctx := context.Background()

	_, err := d.Dispatch(ctx, []string{"get", "style"})
	require.NoError(t, err)
	assert.Equal(t, "no style set\n", out.String())

	out.Reset()
	_, err = d.Dispatch(ctx, []string{"set", "style", "apa"})
	require.NoError(t, err)
	_, err = d.Dispatch(ctx, []string{"get", "style"})
	require.NoError(t, err)
	assert.Equal(t, "apa\n", out.String())
}

func TestDispatch_Exit(t *testing.T) {
	for _, name := range []string{"exit", "quit"} {
		d, _, _, _ := newTestDispatcher(staticCatalog("apa"))
		status, err := d.Dispatch(context.Background(), []string{name})
		assert.ErrorIs(t, err, shell.ErrExit)
		assert.Equal(t, 0, status)
	}
}

func TestDispatch_Unknown(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"command", []string{"sett", "style", "apa"}, []string{"unknown command `sett'", "did you mean: set"}},
		{"property", []string{"set", "colour", "red"}, []string{"unknown property `colour'"}},
		{"property typo", []string{"get", "styel"}, []string{"unknown property `styel'", "did you mean: style"}},
		{"set alone", []string{"set"}, []string{"usage: set style <STYLE>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _, _, errOut := newTestDispatcher(staticCatalog("apa"))
			status, err := d.Dispatch(context.Background(), tt.args)
			require.NoError(t, err)
			assert.Equal(t, 1, status)
			for _, w := range tt.want {
				assert.Contains(t, errOut.String(), w)
			}
		})
	}
}

func TestDispatch_Styles(t *testing.T) {
	d, _, out, _ := newTestDispatcher(staticCatalog("apa", "chicago", "chicago-note", "ieee"))

	status, err := d.Dispatch(context.Background(), []string{"styles", "--output", "raw", "chicago"})
	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, "chicago\nchicago-note\n", out.String())
}

func TestDispatch_StylesCatalogFailure(t *testing.T) {
	d, _, _, errOut := newTestDispatcher(failingCatalog())

	status, err := d.Dispatch(context.Background(), []string{"styles"})
	require.NoError(t, err)
	assert.Equal(t, 1, status)
	assert.Contains(t, errOut.String(), "style catalog unavailable")
}

func TestDispatch_Help(t *testing.T) {
	d, _, out, _ := newTestDispatcher(staticCatalog("apa"))

	status, err := d.Dispatch(context.Background(), []string{"help"})
	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Contains(t, out.String(), "set")
	assert.Contains(t, out.String(), "exit")
}

func TestDispatcher_Complete(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"empty line", "", []string{"exit", "get", "help", "quit", "set", "styles"}},
		{"command prefix", "s", []string{"set", "styles"}},
		{"property", "set ", []string{"style"}},
		{"property prefix", "get st", []string{"style"}},
		{"all styles", "set style ", []string{"apa", "ieee"}},
		{"style prefix", "set style ap", []string{"apa"}},
		{"one style only", "set style apa ", nil},
		{"get takes no style", "get style ", nil},
		{"unknown command", "frob ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _, _, _ := newTestDispatcher(staticCatalog("apa", "ieee"))
			assert.Equal(t, tt.want, d.Complete(context.Background(), tt.line, len(tt.line)))
		})
	}
}

func TestDispatcher_CompleteUsesTextBeforeCursor(t *testing.T) {
	d, _, _, _ := newTestDispatcher(staticCatalog("apa", "ieee"))
	line := "set style ie trailing"
	assert.Equal(t, []string{"ieee"}, d.Complete(context.Background(), line, strings.Index(line, " trailing")))
}

func TestDispatcher_CompleteCatalogFailure(t *testing.T) {
	d, _, _, _ := newTestDispatcher(failingCatalog())
	assert.Empty(t, d.Complete(context.Background(), "set style a", 11))
}

func TestShell_EndToEnd(t *testing.T) {
	d, sess, out, errOut := newTestDispatcher(staticCatalog("apa", "ieee", "chicago"))
	input := strings.NewReader("set style aap\nset style apa\nget style\nexit\nset style ieee\n")

	sh := shell.New(sess, d, input, "")
	require.NoError(t, sh.Run(context.Background()))

	assert.Equal(t, "apa\n", out.String())
	assert.Contains(t, errOut.String(), "did you mean: apa")

	got, _ := sess.Style()
	assert.Equal(t, "apa", got)
}
