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

// Package sink holds the consumers of a sampling store.
//
// Consume is the presentation loop: it waits on the tick notification
// receiver, coalesces notifications that arrived while the previous render
// was running and hands a fresh store snapshot to a Renderer. Renderers:
//
//   - Console prints each snapshot as a table, JSON or YAML.
//   - Tracker remembers when the last snapshot arrived and backs the
//     server readiness probe.
//   - Watchdog forwards progress to systemd (READY=1, WATCHDOG=1).
//
// Exporter is not a Renderer. It is a prometheus.Collector that snapshots
// the store on every scrape.
package sink
