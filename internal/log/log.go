// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a custom handler and a log level from the
// CITECTL_LOG env variable. Log lines go to stderr so they never interleave
// with shell output on stdout.
func InitLogger() {
	log.SetHandler(&CustomHandler{Writer: os.Stderr})

	level, err := log.ParseLevel(os.Getenv("CITECTL_LOG"))
	if err != nil {
		level = log.ErrorLevel
	}
	log.SetLevel(level)
}

// CustomHandler formats log messages and writes them to Writer, or stderr if
// Writer is nil.
type CustomHandler struct {
	Writer io.Writer
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	w := h.Writer
	if w == nil {
		w = os.Stderr
	}
	timestamp := e.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	level := strings.ToUpper(e.Level.String())
	_, err := fmt.Fprintf(w, "%s %.1s %s\n", timestamp.Format("2006-01-02 15:04:05"), level, e.Message)
	return err
}
