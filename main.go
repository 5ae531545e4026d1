// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"

	"github.com/staranto/citectl/internal/cacheutil"
	"github.com/staranto/citectl/internal/command"
	"github.com/staranto/citectl/internal/config"
	mylog "github.com/staranto/citectl/internal/log"
	"github.com/staranto/citectl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	// Short-circuit --version/-v.
	for _, a := range args[1:] {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	// Best-effort: pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		// Non-fatal: print to stderr and continue.
		fmt.Fprintln(os.Stderr, err)
	}

	// Drop cached catalogs nobody has refreshed in a week.
	purgeHours, _ := config.GetInt("cache.purge_hours", 168)
	if err := cacheutil.Purge(purgeHours); err != nil {
		log.WithError(err).Warn("cache purge failed")
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}
