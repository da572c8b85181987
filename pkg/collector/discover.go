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

package collector

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/hwstat/pkg/defaults"
	"github.com/NVIDIA/hwstat/pkg/errors"
	"github.com/NVIDIA/hwstat/pkg/source"
)

// Discover runs every collector from f concurrently and returns their
// groups in a fixed order: cpufreq first, then hwmon devices. Any failure
// aborts discovery, closes whatever was opened and is reported as
// ErrCodeDiscovery.
func Discover(ctx context.Context, f Factory) ([]source.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.DiscoveryTimeout)
	defer cancel()

	start := time.Now()
	collectors := []Collector{
		f.CreateCPUFreqCollector(),
		f.CreateHwmonCollector(),
	}
	results := make([][]source.Group, len(collectors))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range collectors {
		g.Go(func() error {
			groups, err := c.Collect(gctx)
			results[i] = groups
			return err
		})
	}

	err := g.Wait()
	var out []source.Group
	for _, r := range results {
		out = append(out, r...)
	}
	if err != nil {
		_ = source.CloseAll(out)
		if errors.CodeOf(err) == errors.ErrCodeDiscovery {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeDiscovery, "source discovery failed", err)
	}

	sources := 0
	for _, grp := range out {
		sources += len(grp.Sources)
	}
	slog.Info("source discovery completed",
		"groups", len(out), "sources", sources, "duration", time.Since(start).String())
	return out, nil
}
