// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrUnavailable is wrapped by every error a Catalog returns when the set of
// supported styles could not be determined.
var ErrUnavailable = errors.New("style catalog unavailable")

// Catalog is the authoritative source of supported style identifiers.
type Catalog interface {
	Styles(ctx context.Context) (Set, error)
}

// Func adapts an ordinary function to a Catalog.
type Func func(ctx context.Context) (Set, error)

// Styles calls f(ctx).
func (f Func) Styles(ctx context.Context) (Set, error) {
	return f(ctx)
}

// Set is a set of style identifiers. Membership is exact string equality.
type Set map[string]struct{}

// NewSet builds a Set from ids, ignoring empty strings.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

func (s Set) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Spec describes which catalog to build.
type Spec struct {
	// Source is one of "bundled", "file:<path>", "remote" or "remote:<url>".
	// Empty means bundled.
	Source     string
	URL        string
	Timeout    time.Duration
	CacheHours int
	// Extra ids are added to whatever the source provides.
	Extra []string
}

// New returns the Catalog described by spec.
func New(spec Spec) (Catalog, error) {
	c, err := newSource(spec)
	if err != nil || len(spec.Extra) == 0 {
		return c, err
	}
	return &withExtra{Catalog: c, extra: NewSet(spec.Extra...)}, nil
}

func newSource(spec Spec) (Catalog, error) {
	source := strings.TrimSpace(spec.Source)
	kind, arg, _ := strings.Cut(source, ":")

	switch kind {
	case "", "bundled":
		return Bundled(), nil
	case "file":
		if arg == "" {
			return nil, fmt.Errorf("catalog source %q is missing a path", source)
		}
		return &File{Path: arg}, nil
	case "remote", "http", "https":
		url := spec.URL
		switch {
		case kind == "http" || kind == "https":
			url = source
		case arg != "":
			url = arg
		}
		return NewRemote(url, spec.Timeout, spec.CacheHours), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", source)
	}
}

// withExtra adds locally configured ids to a catalog. A failing source still
// fails; the extras alone are not an authoritative catalog.
type withExtra struct {
	Catalog
	extra Set
}

func (w *withExtra) Styles(ctx context.Context) (Set, error) {
	s, err := w.Catalog.Styles(ctx)
	if err != nil {
		return nil, err
	}
	merged := make(Set, len(s)+len(w.extra))
	for id := range s {
		merged[id] = struct{}{}
	}
	for id := range w.extra {
		merged[id] = struct{}{}
	}
	return merged, nil
}

func unavailable(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if err == nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, msg)
	}
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, msg, err)
}
