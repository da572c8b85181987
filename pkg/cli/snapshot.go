/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hwstat/pkg/collector"
	"github.com/NVIDIA/hwstat/pkg/defaults"
	"github.com/NVIDIA/hwstat/pkg/serializer"
	"github.com/NVIDIA/hwstat/pkg/snapshotter"
)

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:                  "snapshot",
		EnableShellCompletion: true,
		Usage:                 "Take one sample of every sensor",
		Description: `Discover every sensor, read each once and print the values.

A sensor that cannot be read is reported as faulted rather than failing the
command. Discovery failures are fatal.

Use --from to re-render a snapshot saved earlier, or fetched from a running
"hwstat serve" instance, instead of sampling this node.

# Examples

  hwstat snapshot --format table
  hwstat snapshot --filter 'coretemp/*' --filter 'CPU/*' -o snap.json -t json
  hwstat snapshot --from http://node-1:8080/v1/snapshot --format table`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "from",
				Aliases: []string{"f"},
				Usage:   "Path or HTTP/HTTPS URL of a previously captured snapshot",
			},
			&cli.DurationFlag{
				Name:  "from-timeout",
				Usage: "Total timeout when --from is a URL",
				Value: defaults.HTTPClientTimeout,
			},
			&cli.BoolFlag{
				Name:  "insecure",
				Usage: "Skip TLS certificate verification when --from is an HTTPS URL",
			},
			filterFlag(),
			outputFlag(),
			formatFlag(serializer.FormatYAML),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeSerializer(ser)

			if from := cmd.String("from"); from != "" {
				snap, err := serializer.FromFile[snapshotter.Snapshot](from,
					serializer.WithUserAgent(fmt.Sprintf("%s/%s", name, version)),
					serializer.WithTotalTimeout(cmd.Duration("from-timeout")),
					serializer.WithInsecureSkipVerify(cmd.Bool("insecure")))
				if err != nil {
					return fmt.Errorf("failed to load snapshot from %q: %w", from, err)
				}
				if err := snap.Validate(); err != nil {
					return fmt.Errorf("%q is not a usable snapshot: %w", from, err)
				}
				return ser.Serialize(ctx, snap.Filter(cmd.StringSlice("filter")))
			}

			ns := snapshotter.NodeSnapshotter{
				Version:    version,
				Factory:    collector.NewDefaultFactory(collector.WithSysRoot(cmd.String("sys-root"))),
				Serializer: ser,
				Filter:     cmd.StringSlice("filter"),
			}
			return ns.Measure(ctx)
		},
	}
}

func closeSerializer(s serializer.Serializer) {
	if c, ok := s.(serializer.Closer); ok {
		if err := c.Close(); err != nil {
			slog.Warn("failed to close output", "error", err)
		}
	}
}
