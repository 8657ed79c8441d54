// Package main provides the entry point for the synncore CLI.
package main

import (
	"context"
	"os"

	"github.com/a-simacov/synncore/internal/cli"
)

// Build information set via ldflags.
//
//nolint:gochecknoglobals // Set at build time
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	ctx := context.Background()
	info := cli.BuildInfo{Version: version, Commit: commit, Date: date}
	if err := cli.Execute(ctx, info); err != nil {
		os.Exit(1)
	}
}
