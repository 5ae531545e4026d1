// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package session holds the state of one interactive shell lifetime.
package session

import (
	"io"
	"os"
	"sync"
)

// Session is created when a shell starts and discarded when it exits. It is
// safe for concurrent use; each Session serializes access to its own state.
type Session struct {
	mu    sync.Mutex
	style string
	set   bool

	// Out and Err are the streams commands write to.
	Out io.Writer
	Err io.Writer
}

// New returns a Session with no active style. Nil writers default to
// stdout/stderr.
func New(out, err io.Writer) *Session {
	if out == nil {
		out = os.Stdout
	}
	if err == nil {
		err = os.Stderr
	}
	return &Session{Out: out, Err: err}
}

// Style returns the active style and whether one has been set.
func (s *Session) Style() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.style, s.set
}

// SetStyle makes id the active style.
func (s *Session) SetStyle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = id
	s.set = true
}
