// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/citectl/internal/config"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	args = append([]string{"citectl"}, args...)

	app, err := InitApp(context.Background(), args)
	require.NoError(t, err)

	var out bytes.Buffer
	app.Writer = &out
	err = app.Run(context.Background(), args)
	return out.String(), err
}

func TestInitApp(t *testing.T) {
	app, err := InitApp(context.Background(), []string{"citectl", "styles"})
	require.NoError(t, err)

	assert.Equal(t, "citectl", app.Name)
	assert.Equal(t, "shell", app.DefaultCommand)

	var names []string
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"completion", "shell", "styles"}, names)

	m := GetMeta(app.Command("styles"))
	assert.Equal(t, []string{"citectl", "styles"}, m.Args)
}

func TestStylesCommand_Bundled(t *testing.T) {
	out, err := runApp(t, "styles", "--catalog", "bundled", "--output", "raw", "--filter", "id=ieee")
	require.NoError(t, err)
	assert.Equal(t, "ieee\n", out)
}

func TestStylesCommand_FilePositionalFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.txt")
	require.NoError(t, os.WriteFile(path, []byte("apa\nieee\nchicago\n"), 0o600))

	out, err := runApp(t, "styles", "--catalog", "file:"+path, "-o", "json", "i")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"ieee"}]`, out)
}

func TestStylesCommand_ConfigExtra(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citectl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog:\n  extra:\n    - house-style\n"), 0o600))
	t.Setenv("CITECTL_CFG", path)
	t.Cleanup(func() { config.Config = config.Type{} })

	out, err := runApp(t, "styles", "--catalog", "bundled", "--output", "raw", "--filter", "id=house-style")
	require.NoError(t, err)
	assert.Equal(t, "house-style\n", out)
}

func TestStylesCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad output", []string{"styles", "--output", "xml"}},
		{"bad catalog", []string{"styles", "--catalog", "ftp://x"}},
		{"missing file", []string{"styles", "--catalog", "file:/does/not/exist"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := runApp(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _citectl citectl")

	out, err = runApp(t, "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "compdef _citectl citectl")
}

func TestOutputValidator(t *testing.T) {
	for _, v := range []string{"text", "json", "raw", "yaml"} {
		assert.NoError(t, OutputValidator(v))
	}
	assert.Error(t, OutputValidator("xml"))
}

func TestCatalogValidator(t *testing.T) {
	for _, v := range []string{"bundled", "remote", "remote:https://example.com/index.json", "file:styles.txt", "https://example.com/x"} {
		assert.NoError(t, CatalogValidator(v), v)
	}
	for _, v := range []string{"file:", "ftp://x", "nope"} {
		assert.Error(t, CatalogValidator(v), v)
	}
}

func TestJammedFlagValidator(t *testing.T) {
	assert.NoError(t, JammedFlagValidator("apa"))
	assert.Error(t, JammedFlagValidator("--output"))
	assert.NoError(t, FlagValidators("bundled", JammedFlagValidator, CatalogValidator))
}
