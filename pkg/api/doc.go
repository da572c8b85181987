// Package api assembles the hwstatd daemon.
//
// This package wires the sampling pipeline to the reusable pkg/server
// package. New discovers every source once; Run then drives three parts
// under one errgroup until shutdown:
//
//   - the sampling scheduler, ticking the engine every defaults.SamplePeriod
//   - the notification consumer, feeding the staleness tracker and the
//     systemd watchdog
//   - the HTTP server
//
// # Usage
//
//	package main
//
//	import (
//	    "context"
//	    "log"
//	    "github.com/NVIDIA/hwstat/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(context.Background(), api.Config{}); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application Endpoints (with rate limiting):
//   - GET /v1/snapshot - Current values of every source (?source=, ?format=)
//   - GET /v1/sources  - Discovered sources without values (?format=)
//
// System Endpoints (no rate limiting):
//   - GET /health  - Health check (liveness probe)
//   - GET /ready   - Ready once a tick has been rendered within defaults.StaleAfter
//   - GET /metrics - Prometheus metrics, including one series set per source
//
// # Shutdown
//
// SIGINT, SIGTERM or cancelling the context stops the server and the
// consumer. The consumer closes the notification receiver, so the
// scheduler stops after at most one more tick. A poisoned store stops the
// scheduler with an error, which takes the rest of the daemon down with it.
package api
