/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hwstat/pkg/collector"
	"github.com/NVIDIA/hwstat/pkg/serializer"
	"github.com/NVIDIA/hwstat/pkg/snapshotter"
)

func listCmd() *cli.Command {
	return &cli.Command{
		Name:                  "list",
		EnableShellCompletion: true,
		Usage:                 "List discovered sensors",
		Description: `Discover every CPU frequency policy and hwmon sensor and print its group,
name, kind and unit. No sensor value is read.

# Examples

  hwstat list --format table
  hwstat --sys-root /host/sys list -o sources.yaml`,
		Flags: []cli.Flag{
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

			ns := snapshotter.NodeSnapshotter{
				Version:    version,
				Factory:    collector.NewDefaultFactory(collector.WithSysRoot(cmd.String("sys-root"))),
				Serializer: ser,
			}
			return ns.List(ctx)
		},
	}
}
