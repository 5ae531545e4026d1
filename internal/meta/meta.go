// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"

	"github.com/staranto/citectl/internal/catalog"
	"github.com/staranto/citectl/internal/config"
	"github.com/staranto/citectl/internal/session"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	// Catalog is nil for commands that build their own from flags.
	Catalog catalog.Catalog
	// Session is only set inside the interactive shell.
	Session *session.Session
}
