/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hwstat/pkg/defaults"
	"github.com/NVIDIA/hwstat/pkg/logging"
	"github.com/NVIDIA/hwstat/pkg/serializer"
)

const (
	name           = "hwstat"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Flag constructors return a fresh flag for every command; a flag holds its
// parsed value.

func logLevelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "log-level",
		Usage:   "log level (debug, info, warn, error)",
		Sources: cli.EnvVars("LOG_LEVEL"),
		Value:   "info",
	}
}

func sysRootFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "sys-root",
		Usage:   "sysfs mount point to discover sensors under",
		Sources: cli.EnvVars("HWSTAT_SYS_ROOT"),
		Value:   defaults.SysRoot,
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

func formatFlag(def serializer.Format) cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("output format (supported values: %v)", serializer.SupportedFormats()),
		Sources: cli.EnvVars("HWSTAT_FORMAT"),
		Value:   string(def),
	}
}

func filterFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "filter",
		Usage: "keep only sources matching a <group>/<source> wildcard pattern (can be repeated)",
	}
}

// Execute runs the hwstat CLI. This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "hwstat - hardware telemetry sampler",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Description: `Samples CPU frequency and hwmon sensors (temperature, fan speed, voltage,
current, power) exported by the kernel under sysfs.

  list     - discover sensors and print them without reading values
  snapshot - take one sample of every sensor and print it
  watch    - sample continuously and redraw a table in the terminal
  serve    - sample continuously and serve the values over HTTP`,
		Flags: []cli.Flag{
			logLevelFlag(),
			sysRootFlag(),
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			listCmd(),
			snapshotCmd(),
			watchCmd(),
			serveCmd(),
		},
	}
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", f)
	}
	return f, nil
}
