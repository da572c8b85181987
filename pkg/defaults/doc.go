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

// Package defaults provides centralized configuration constants for hwstat.
//
// The sampling period, the per-read buffer bound and the HTTP server
// timeouts live here so the sampler, collectors and server agree on them.
//
// # Usage
//
//	import "github.com/NVIDIA/hwstat/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.DiscoveryTimeout)
//	defer cancel()
//
// # Guidelines
//
//   - Sampling: fixed 2s period, no catch-up
//   - Discovery: 10s bound on startup enumeration
//   - Server shutdown: 30s for graceful shutdown
package defaults
