// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// citectl is the main package for the citectl command line tool. It wires
// the CLI and the interactive style shell, delegates to internal packages,
// and serves as the entry point.
package main
