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

package cpufreq

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"

	"github.com/NVIDIA/hwstat/pkg/defaults"
	"github.com/NVIDIA/hwstat/pkg/errors"
	"github.com/NVIDIA/hwstat/pkg/source"
	"github.com/NVIDIA/hwstat/pkg/sysfs"
)

const (
	// GroupName is the group every cpufreq policy is reported under.
	GroupName = "CPU"

	// Kind is reported by Core through source.Kinded.
	Kind = "cpufreq"

	curFreqFile = "scaling_cur_freq"
	unit        = "MHz"
	khzPerMHz   = 1000
)

var policyPattern = regexp.MustCompile(`^policy(\d+)$`)

// Core reads the current scaling frequency of one cpufreq policy.
type Core struct {
	file *os.File
	path string
	name string
}

// OpenCore opens the scaling_cur_freq attribute of the policy directory dir
// and names the source "CPU <index>".
func OpenCore(dir string, index int) (*Core, error) {
	path := filepath.Join(dir, curFreqFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeDiscovery,
			"failed to open cpufreq policy", err, map[string]any{"path": path})
	}
	return &Core{
		file: f,
		path: path,
		name: fmt.Sprintf("CPU %d", index),
	}, nil
}

// Read implements source.Source. The kernel reports kHz.
func (c *Core) Read() (float64, bool) {
	khz, err := sysfs.ReadValue[int64](c.file, c.path)
	if err != nil {
		slog.Warn("cpu frequency read failed",
			append([]any{"source", c.name}, errors.LogAttrs(err)...)...)
		return 0, false
	}
	return float64(khz) / khzPerMHz, true
}

// Unit implements source.Source.
func (c *Core) Unit() string { return unit }

// Name implements source.Source.
func (c *Core) Name() string { return c.name }

// Kind implements source.Kinded.
func (c *Core) Kind() string { return Kind }

// Close releases the attribute handle.
func (c *Core) Close() error {
	return c.file.Close()
}

// Collector discovers cpufreq policies under
// SysRoot/devices/system/cpu/cpufreq.
type Collector struct {
	SysRoot string
}

type policy struct {
	index int
	dir   string
}

// Collect returns a single "CPU" group with one source per policy, ordered
// by policy number. Systems without cpufreq, such as most virtual
// machines, yield no groups.
func (c *Collector) Collect(ctx context.Context) ([]source.Group, error) {
	root := c.SysRoot
	if root == "" {
		root = defaults.SysRoot
	}
	dir := filepath.Join(root, "devices", "system", "cpu", "cpufreq")

	entries, err := os.ReadDir(dir)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			slog.Info("no cpufreq policies found", "path", dir)
			return nil, nil
		}
		return nil, errors.WrapWithContext(errors.ErrCodeDiscovery,
			"failed to enumerate cpufreq policies", err, map[string]any{"path": dir})
	}

	var policies []policy
	for _, e := range entries {
		m := policyPattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		policies = append(policies, policy{index: n, dir: filepath.Join(dir, e.Name())})
	}
	if len(policies) == 0 {
		return nil, nil
	}
	slices.SortFunc(policies, func(a, b policy) int { return a.index - b.index })

	g := source.Group{Name: GroupName, Sources: make([]source.Source, 0, len(policies))}
	for _, p := range policies {
		if err := ctx.Err(); err != nil {
			_ = source.CloseAll([]source.Group{g})
			return nil, err
		}
		core, err := OpenCore(p.dir, p.index)
		if err != nil {
			_ = source.CloseAll([]source.Group{g})
			return nil, err
		}
		g.Sources = append(g.Sources, core)
	}

	slog.Debug("discovered cpufreq policies", "count", len(g.Sources))
	return []source.Group{g}, nil
}
