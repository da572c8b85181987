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

package hwmon

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
	"strings"

	"github.com/NVIDIA/hwstat/pkg/defaults"
	"github.com/NVIDIA/hwstat/pkg/errors"
	"github.com/NVIDIA/hwstat/pkg/source"
	"github.com/NVIDIA/hwstat/pkg/sysfs"
)

var devicePattern = regexp.MustCompile(`^hwmon(\d+)$`)

// Collector discovers every hwmon device under SysRoot/class/hwmon.
type Collector struct {
	SysRoot string
}

type device struct {
	index int
	dir   string
	base  string
}

// Collect returns one group per hwmon device, ordered by device index, with
// sensors ordered by name. Device names that repeat, such as two "nvme"
// controllers, are suffixed with the directory name to keep groups unique.
// A system without a hwmon class yields no groups.
func (c *Collector) Collect(ctx context.Context) ([]source.Group, error) {
	root := c.SysRoot
	if root == "" {
		root = defaults.SysRoot
	}
	classDir := filepath.Join(root, "class", "hwmon")

	entries, err := os.ReadDir(classDir)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			slog.Info("no hwmon class found", "path", classDir)
			return nil, nil
		}
		return nil, errors.WrapWithContext(errors.ErrCodeDiscovery,
			"failed to enumerate hwmon devices", err, map[string]any{"path": classDir})
	}

	var devices []device
	for _, e := range entries {
		m := devicePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		devices = append(devices, device{index: n, dir: filepath.Join(classDir, e.Name()), base: e.Name()})
	}
	slices.SortFunc(devices, func(a, b device) int { return a.index - b.index })

	groups := make([]source.Group, 0, len(devices))
	seen := make(map[string]bool, len(devices))
	for _, d := range devices {
		if err := ctx.Err(); err != nil {
			_ = source.CloseAll(groups)
			return nil, err
		}

		g, err := collectDevice(d)
		if err != nil {
			_ = source.CloseAll(groups)
			return nil, err
		}
		g.Name = uniqueName(seen, g.Name, d.base)
		seen[g.Name] = true
		groups = append(groups, g)
	}

	slog.Debug("discovered hwmon devices", "count", len(groups))
	return groups, nil
}

func collectDevice(d device) (source.Group, error) {
	namePath := filepath.Join(d.dir, "name")
	name, err := sysfs.ReadString(namePath)
	if err != nil || name == "" {
		slog.Warn("hwmon device has no usable name, using directory name",
			"path", namePath, "fallback", d.base, "error", err)
		name = d.base
	}

	files, err := os.ReadDir(d.dir)
	if err != nil {
		return source.Group{}, errors.WrapWithContext(errors.ErrCodeDiscovery,
			"failed to enumerate hwmon sensors", err, map[string]any{"path": d.dir})
	}

	var sensors []*Sensor
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if _, _, ok := ParseInputName(f.Name()); !ok {
			continue
		}
		s, err := OpenSensor(filepath.Join(d.dir, f.Name()))
		if err != nil {
			for _, opened := range sensors {
				_ = opened.Close()
			}
			return source.Group{}, err
		}
		sensors = append(sensors, s)
	}

	disambiguate(sensors)
	slices.SortFunc(sensors, func(a, b *Sensor) int { return strings.Compare(a.name, b.name) })

	g := source.Group{Name: name, Sources: make([]source.Source, 0, len(sensors))}
	for _, s := range sensors {
		g.Sources = append(g.Sources, s)
	}
	return g, nil
}

// uniqueName returns name, or name suffixed with the directory name and
// then a counter until it is not in seen.
func uniqueName(seen map[string]bool, name, base string) string {
	if !seen[name] {
		return name
	}
	candidate := fmt.Sprintf("%s (%s)", name, base)
	for i := 2; seen[candidate]; i++ {
		candidate = fmt.Sprintf("%s (%s #%d)", name, base, i)
	}
	return candidate
}

// disambiguate appends the attribute id to sensors sharing a label.
func disambiguate(sensors []*Sensor) {
	counts := make(map[string]int, len(sensors))
	for _, s := range sensors {
		counts[s.name]++
	}
	for _, s := range sensors {
		if counts[s.name] > 1 {
			s.name = fmt.Sprintf("%s (%s)", s.name, s.id)
		}
	}
}
