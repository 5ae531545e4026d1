// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/citectl/internal/catalog"
	"github.com/staranto/citectl/internal/config"
)

func init() {
	cfg, _ = config.Load()
}

var cfg config.Type

// NewCatalogFlags returns the flags that describe where styles come from.
// ns is the command name used for namespaced config keys.
func NewCatalogFlags(ns string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "catalog",
			Usage: "style catalog: bundled, file:<path>, remote or remote:<url>",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CITECTL_CATALOG"),
				yaml.YAML(ns+".catalog.source", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("catalog.source", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "bundled",
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, CatalogValidator)
			},
		},
		&cli.StringFlag{
			Name:   "catalog-url",
			Usage:  "index URL used by the remote catalog",
			Hidden: true,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CITECTL_CATALOG_URL"),
				yaml.YAML("catalog.url", altsrc.StringSourcer(cfg.Source)),
			),
			Value: catalog.DefaultURL,
		},
		&cli.DurationFlag{
			Name:   "timeout",
			Usage:  "remote catalog request timeout",
			Hidden: true,
			Sources: cli.NewValueSourceChain(
				yaml.YAML("catalog.timeout", altsrc.StringSourcer(cfg.Source)),
			),
			Value: 10 * time.Second,
		},
		&cli.IntFlag{
			Name:   "cache-hours",
			Usage:  "hours a fetched remote catalog stays fresh",
			Hidden: true,
			Sources: cli.NewValueSourceChain(
				yaml.YAML("catalog.cache_hours", altsrc.StringSourcer(cfg.Source)),
			),
			Value: 24,
		},
	}
}

// NewOutputFlags returns the flags that shape a style listing.
func NewOutputFlags(ns string) []cli.Flag {
	return []cli.Flag{
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+".color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+".output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+".titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}
}

// NewShellFlags returns the flags of the shell command.
func NewShellFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "prompt",
			Usage: "shell prompt",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CITECTL_PROMPT"),
				yaml.YAML("shell.prompt", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.StringFlag{
			Name:    "style",
			Aliases: []string{"s"},
			Usage:   "style to select when the shell starts",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CITECTL_STYLE"),
				yaml.YAML("shell.style", altsrc.StringSourcer(cfg.Source)),
			),
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
	}
}

// catalogFromFlags builds the catalog described by the catalog flags. Ids
// listed under catalog.extra in the config file are added to it.
func catalogFromFlags(cmd *cli.Command) (catalog.Catalog, error) {
	extra, err := config.GetStringSlice("catalog.extra", nil)
	if err != nil {
		return nil, fmt.Errorf("catalog.extra: %w", err)
	}

	return catalog.New(catalog.Spec{
		Source:     cmd.String("catalog"),
		URL:        cmd.String("catalog-url"),
		Timeout:    cmd.Duration("timeout"),
		CacheHours: cmd.Int("cache-hours"),
		Extra:      extra,
	})
}
