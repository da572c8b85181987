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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hwstat/pkg/collector"
	"github.com/NVIDIA/hwstat/pkg/defaults"
	"github.com/NVIDIA/hwstat/pkg/logging"
	"github.com/NVIDIA/hwstat/pkg/sampler"
	"github.com/NVIDIA/hwstat/pkg/serializer"
	"github.com/NVIDIA/hwstat/pkg/sink"
	"github.com/NVIDIA/hwstat/pkg/source"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:                  "watch",
		EnableShellCompletion: true,
		Usage:                 "Sample continuously and print every update",
		Description: fmt.Sprintf(`Discover every sensor and sample it every %s, printing the values after
each sample. In table format the terminal is redrawn in place; use
--no-clear to append instead. Press Ctrl-C to stop.

# Examples

  hwstat watch
  hwstat watch --filter 'coretemp/*' --format json`, defaults.SamplePeriod),
		Flags: []cli.Flag{
			filterFlag(),
			formatFlag(serializer.FormatTable),
			&cli.BoolFlag{
				Name:  "no-clear",
				Usage: "append each update instead of redrawing the terminal",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			// JSON records would interleave with the table on a terminal
			slog.SetDefault(logging.NewTextLogger(os.Stderr, cmd.String("log-level")))

			console := sink.NewConsole(
				sink.WithOutput(cmd.Root().Writer),
				sink.WithFormat(outFormat),
				sink.WithVersion(version),
				sink.WithFilter(cmd.StringSlice("filter")),
				sink.WithClear(!cmd.Bool("no-clear")),
			)
			return watch(ctx, collector.NewDefaultFactory(collector.WithSysRoot(cmd.String("sys-root"))), console)
		},
	}
}

// watch samples the sources found by f until ctx is done and renders
// every update with r. Sources are closed after sampling has stopped.
func watch(ctx context.Context, f collector.Factory, r sink.Renderer) error {
	groups, err := collector.Discover(ctx, f)
	if err != nil {
		return err
	}
	defer func() {
		if err := source.CloseAll(groups); err != nil {
			slog.Warn("failed to close sources", "error", err)
		}
	}()

	cat, err := sampler.FromGroups(groups)
	if err != nil {
		return fmt.Errorf("failed to build catalogue: %w", err)
	}
	store := sampler.NewStore(cat)
	tx, rx := sampler.NewChannel()

	// A poisoned store stops sampling only; the last frame stays up until
	// the user quits.
	sampling := make(chan struct{})
	go func() {
		defer close(sampling)
		if err := sampler.NewScheduler(sampler.NewEngine(store, tx)).Run(); err != nil {
			slog.Error("sampling stopped, press Ctrl-C to exit", "error", err)
		}
	}()

	err = sink.Consume(ctx, rx, store, r)
	<-sampling
	return err
}
