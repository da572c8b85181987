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

package defaults

import "time"

// Sampling constants. The period is fixed; it is not a runtime knob.
const (
	// SamplePeriod is the sleep between two sampling ticks.
	SamplePeriod = 2 * time.Second

	// ReadBufferSize bounds the single read performed per source per tick.
	// It holds any 64-bit decimal value with sign and trailing newline.
	ReadBufferSize = 24

	// StaleAfter is how long the presentation side waits without a
	// notification before it considers the producer stalled.
	StaleAfter = 3 * SamplePeriod
)

// Discovery constants for the sysfs layout.
const (
	// SysRoot is the default sysfs mount point.
	SysRoot = "/sys"

	// DiscoveryTimeout bounds startup enumeration of device directories.
	DiscoveryTimeout = 10 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// HTTP client timeouts for fetching remote snapshots.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
)

// Server rate limiting.
const (
	// ServerRateLimit is the sustained number of requests per second.
	ServerRateLimit = 50

	// ServerRateLimitBurst is the number of requests allowed in a burst.
	ServerRateLimitBurst = 100

	// ServerMaxBodyBytes caps request bodies; every endpoint is read-only.
	ServerMaxBodyBytes = 1 << 20
)
