// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server provides the HTTP server behind "hwstat serve".
//
// # Routes
//
//	GET /health   liveness, always 200 while the process runs
//	GET /ready    503 until started, and while any readiness check fails
//	GET /metrics  Prometheus exposition of the default registry
//	GET /         name, version and registered routes
//
// API routes are supplied with WithHandler and served behind a middleware
// chain of metrics, API version negotiation, request IDs, panic recovery,
// rate limiting, a body size cap and debug logging. System routes skip the
// chain so probes and scrapes are never rate limited.
//
// # Usage
//
//	h := &snapshotter.StoreHandler{Store: store, Version: version}
//	s := server.New(
//	    server.WithName("hwstat"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/snapshot": h.HandleSnapshot,
//	    }),
//	    server.WithReadinessCheck(tracker.Check),
//	)
//	err := s.Run(ctx)
//
// # Errors
//
// Handlers report failures with WriteError or WriteErrorFromErr. The latter
// maps a StructuredError code to a status:
//
//	INVALID_REQUEST      400
//	NOT_FOUND            404
//	METHOD_NOT_ALLOWED   405
//	RATE_LIMIT_EXCEEDED  429
//	SERVICE_UNAVAILABLE  503
//	POISONED             503
//	anything else        500
//
// # Configuration
//
// NewConfig starts from the defaults package and honours the PORT and
// SHUTDOWN_TIMEOUT_SECONDS environment variables.
package server
