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

// Package collector discovers the hardware telemetry sources of the host.
//
// # Overview
//
// Each device family has its own collector that walks sysfs once at
// startup and opens every attribute it will later sample:
//
//   - cpufreq: one "CPU" group with a source per cpufreq policy
//   - hwmon: one group per hardware-monitor device
//
// # Core Interface
//
//	type Collector interface {
//	    Collect(ctx context.Context) ([]source.Group, error)
//	}
//
// # Factory Pattern
//
// The Factory interface abstracts collector creation so tests can point
// discovery at a synthetic tree:
//
//	factory := collector.NewDefaultFactory(collector.WithSysRoot(t.TempDir()))
//	groups, err := collector.Discover(ctx, factory)
//
// Discover runs the collectors concurrently and always returns groups in
// the same order. It either returns every group or none: on failure any
// handles opened so far are closed and the error carries
// errors.ErrCodeDiscovery.
//
// # Lifetime
//
// Returned sources hold open file handles for the life of the process.
// Callers that stop sampling early release them with source.CloseAll.
package collector
