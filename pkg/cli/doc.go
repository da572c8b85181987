// Package cli implements the command-line interface for hwstat.
//
// # Overview
//
// hwstat samples the CPU frequency policies and hwmon sensors the kernel
// exports under sysfs. Every command discovers the sensors once at startup;
// a discovery failure is fatal, a sensor that fails to read is reported as
// faulted and skipped from then on.
//
// # Commands
//
// list - Print discovered sensors without reading them:
//
//	hwstat list [--output FILE] [--format yaml|json|table]
//
// snapshot - Sample every sensor once:
//
//	hwstat snapshot [--filter PATTERN]... [--from PATH|URL] [--output FILE] [--format yaml|json|table]
//
// watch - Sample continuously and print every update:
//
//	hwstat watch [--filter PATTERN]... [--format table|json|yaml] [--no-clear]
//
// serve - Run the sampling daemon with an HTTP API (see package api):
//
//	hwstat serve [--address ADDR] [--port PORT]
//
// # Global Flags
//
//   - --sys-root: sysfs mount point, for containers mounting the host's /sys elsewhere
//   - --log-level: debug, info, warn or error
//
// # Environment Variables
//
//   - HWSTAT_SYS_ROOT: default for --sys-root
//   - HWSTAT_FORMAT: default for --format
//   - HWSTAT_ADDRESS: default for serve --address
//   - PORT: default for serve --port
//   - LOG_LEVEL: default for --log-level
//
// # Filters
//
// Filter patterns match "<group>/<source>" names such as "coretemp/Core 0"
// or "CPU/CPU 3". A "*" matches any run of characters:
//
//	hwstat snapshot --filter 'coretemp/*' --filter '*/fan*'
package cli
