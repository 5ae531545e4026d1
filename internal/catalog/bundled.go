// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var bundledStyles []byte

var (
	bundledOnce sync.Once
	bundledSet  Set
	bundledErr  error
)

type bundled struct{}

// Bundled returns the catalog of styles compiled into the binary.
func Bundled() Catalog {
	return bundled{}
}

func (bundled) Styles(_ context.Context) (Set, error) {
	bundledOnce.Do(func() {
		bundledSet, bundledErr = parseYAML(bundledStyles)
		if bundledErr != nil {
			bundledErr = unavailable(bundledErr, "bundled styles")
		}
	})
	return bundledSet, bundledErr
}

// parseYAML accepts either a bare list or a document with a "styles" list.
func parseYAML(data []byte) (Set, error) {
	var doc struct {
		Styles []string `yaml:"styles"`
	}
	if err := yaml.Unmarshal(data, &doc); err == nil && doc.Styles != nil {
		return NewSet(doc.Styles...), nil
	}

	var list []string
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return NewSet(list...), nil
}
