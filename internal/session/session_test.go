// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	s := New(nil, nil)
	assert.Equal(t, os.Stdout, s.Out)
	assert.Equal(t, os.Stderr, s.Err)

	_, ok := s.Style()
	assert.False(t, ok, "a new session starts unset")
}

func TestSetStyle(t *testing.T) {
	var out, errOut bytes.Buffer
	s := New(&out, &errOut)

	s.SetStyle("apa")
	got, ok := s.Style()
	assert.True(t, ok)
	assert.Equal(t, "apa", got)

	s.SetStyle("ieee")
	got, _ = s.Style()
	assert.Equal(t, "ieee", got)
}

func TestSetStyle_Concurrent(t *testing.T) {
	s := New(nil, nil)
	styles := []string{"apa", "ieee", "chicago"}

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			s.SetStyle(id)
			_, _ = s.Style()
		}(styles[i%len(styles)])
	}
	wg.Wait()

	got, ok := s.Style()
	assert.True(t, ok)
	assert.Contains(t, styles, got)
}
