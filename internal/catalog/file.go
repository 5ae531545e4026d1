// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
)

// File reads style identifiers from a local file on every fetch. YAML files
// (.yaml/.yml) hold a list or a "styles" list; anything else is read as one
// identifier per line with '#' comments.
type File struct {
	Path string
}

func (f *File) Styles(_ context.Context) (Set, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, unavailable(err, "reading %s", f.Path)
	}

	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".yaml", ".yml":
		s, err := parseYAML(data)
		if err != nil {
			return nil, unavailable(err, "parsing %s", f.Path)
		}
		log.Debugf("loaded %d styles from %s", s.Len(), f.Path)
		return s, nil
	}

	s := Set{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, unavailable(err, "scanning %s", f.Path)
	}
	log.Debugf("loaded %d styles from %s", s.Len(), f.Path)
	return s, nil
}
