/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hwstat/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Sample continuously and serve the values over HTTP",
		Description: `Run the sampling daemon in the foreground.

Endpoints:
  GET /v1/snapshot  current values (?source=<pattern>, ?format=json|yaml|table)
  GET /v1/sources   discovered sensors
  GET /health       liveness
  GET /ready        fails when no sample was taken recently
  GET /metrics      Prometheus metrics, one series set per sensor

When started by systemd with Type=notify, readiness and watchdog keep-alives
are reported through sd_notify.

# Examples

  hwstat serve --port 9100
  hwstat snapshot --from http://localhost:9100/v1/snapshot --format table`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "address",
				Usage:   "address to listen on (default: all interfaces)",
				Sources: cli.EnvVars("HWSTAT_ADDRESS"),
			},
			&cli.IntFlag{
				Name:    "port",
				Usage:   "port to listen on",
				Sources: cli.EnvVars("PORT"),
				Value:   8080,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			d, err := api.New(ctx, api.Config{
				SysRoot: cmd.String("sys-root"),
				Address: cmd.String("address"),
				Port:    int(cmd.Int("port")),
				Version: version,
			})
			if err != nil {
				return err
			}
			return d.Run(ctx)
		},
	}
}
