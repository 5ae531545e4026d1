// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output provides filtering and emission utilities used by commands
// to present style listings as text tables, JSON, YAML or raw ids.
package output
