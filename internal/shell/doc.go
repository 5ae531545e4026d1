// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package shell implements the interactive citectl prompt. It reads lines,
// splits them into words and hands them to a Dispatcher, which owns the
// command set.
package shell
