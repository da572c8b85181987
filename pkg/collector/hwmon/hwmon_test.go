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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hwstat/pkg/errors"
	"github.com/NVIDIA/hwstat/pkg/sampler"
	"github.com/NVIDIA/hwstat/pkg/source"
)

// writeTree creates files relative to root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func collect(t *testing.T, root string) []source.Group {
	t.Helper()
	groups, err := (&Collector{SysRoot: root}).Collect(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = source.CloseAll(groups) })
	return groups
}

func names(g source.Group) []string {
	out := make([]string, len(g.Sources))
	for i, s := range g.Sources {
		out[i] = s.Name()
	}
	return out
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"class/hwmon/hwmon10/name":        "nct6775\n",
		"class/hwmon/hwmon10/fan1_input":  "1200\n",
		"class/hwmon/hwmon10/in0_input":   "1032\n",
		"class/hwmon/hwmon10/curr1_input": "2500\n",
		"class/hwmon/hwmon10/pwm1":        "128\n",

		"class/hwmon/hwmon2/name":         "coretemp\n",
		"class/hwmon/hwmon2/temp1_input":  "45000\n",
		"class/hwmon/hwmon2/temp1_label":  "Package id 0\n",
		"class/hwmon/hwmon2/temp2_input":  "41000\n",
		"class/hwmon/hwmon2/temp2_label":  "Core 0\n",
		"class/hwmon/hwmon2/temp1_crit":   "100000\n",
		"class/hwmon/hwmon2/uevent":       "",
		"class/hwmon/hwmon2/power/async":  "disabled\n",
		"class/hwmon/hwmon2/temp12_input": "39000\n",
	})

	groups := collect(t, root)
	require.Len(t, groups, 2)

	// numeric, not lexical, device order
	assert.Equal(t, "coretemp", groups[0].Name)
	assert.Equal(t, "nct6775", groups[1].Name)

	assert.Equal(t, []string{"Core 0", "Package id 0", "temp12"}, names(groups[0]))
	assert.Equal(t, []string{"curr1", "fan1", "in0"}, names(groups[1]))

	want := map[string]struct {
		value float64
		unit  string
	}{
		"Core 0":       {41, "°C"},
		"Package id 0": {45, "°C"},
		"temp12":       {39, "°C"},
		"curr1":        {2.5, "A"},
		"fan1":         {1200, "RPM"},
		"in0":          {1.032, "V"},
	}
	for _, g := range groups {
		for _, s := range g.Sources {
			v, ok := s.Read()
			require.True(t, ok, s.Name())
			assert.InDelta(t, want[s.Name()].value, v, 1e-9, s.Name())
			assert.Equal(t, want[s.Name()].unit, s.Unit(), s.Name())
		}
	}
}

func TestCollectNameFallback(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"class/hwmon/hwmon0/temp1_input": "30000\n",
	})

	groups := collect(t, root)
	require.Len(t, groups, 1)
	assert.Equal(t, "hwmon0", groups[0].Name)
}

func TestCollectDuplicateNames(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"class/hwmon/hwmon1/name":        "nvme\n",
		"class/hwmon/hwmon1/temp1_input": "38850\n",
		"class/hwmon/hwmon1/temp1_label": "Composite\n",
		"class/hwmon/hwmon3/name":        "nvme\n",
		"class/hwmon/hwmon3/temp1_input": "40850\n",
		"class/hwmon/hwmon3/temp1_label": "Composite\n",
		"class/hwmon/hwmon3/temp2_input": "42850\n",
		"class/hwmon/hwmon3/temp2_label": "Composite\n",
	})

	groups := collect(t, root)
	require.Len(t, groups, 2)
	assert.Equal(t, "nvme", groups[0].Name)
	assert.Equal(t, "nvme (hwmon3)", groups[1].Name)
	assert.Equal(t, []string{"Composite (temp1)", "Composite (temp2)"}, names(groups[1]))
}

func TestCollectDuplicateNameSuffixTaken(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"class/hwmon/hwmon1/name":        "nvme\n",
		"class/hwmon/hwmon1/temp1_input": "38850\n",
		"class/hwmon/hwmon2/name":        "nvme (hwmon3)\n",
		"class/hwmon/hwmon2/temp1_input": "39850\n",
		"class/hwmon/hwmon3/name":        "nvme\n",
		"class/hwmon/hwmon3/temp1_input": "40850\n",
	})

	groups := collect(t, root)
	require.Len(t, groups, 3)
	got := []string{groups[0].Name, groups[1].Name, groups[2].Name}
	assert.Equal(t, []string{"nvme", "nvme (hwmon3)", "nvme (hwmon3 #2)"}, got)

	_, err := sampler.FromGroups(groups)
	assert.NoError(t, err)
}

func TestUniqueName(t *testing.T) {
	tests := []struct {
		name string
		seen []string
		want string
	}{
		{"free", nil, "nvme"},
		{"taken", []string{"nvme"}, "nvme (hwmon4)"},
		{"suffix taken", []string{"nvme", "nvme (hwmon4)"}, "nvme (hwmon4 #2)"},
		{"counter taken", []string{"nvme", "nvme (hwmon4)", "nvme (hwmon4 #2)"}, "nvme (hwmon4 #3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := make(map[string]bool)
			for _, n := range tt.seen {
				seen[n] = true
			}
			assert.Equal(t, tt.want, uniqueName(seen, "nvme", "hwmon4"))
		})
	}
}

func TestCollectNoHwmonClass(t *testing.T) {
	groups := collect(t, t.TempDir())
	assert.Empty(t, groups)
}

func TestCollectUnreadableClass(t *testing.T) {
	root := t.TempDir()
	// a regular file where the class directory should be
	writeTree(t, root, map[string]string{"class/hwmon": "not a directory"})

	_, err := (&Collector{SysRoot: root}).Collect(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDiscovery, errors.CodeOf(err))
}

func TestCollectCanceled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"class/hwmon/hwmon0/name":        "acpitz\n",
		"class/hwmon/hwmon0/temp1_input": "27800\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Collector{SysRoot: root}).Collect(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSensorReadMalformedValue(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"class/hwmon/hwmon0/name":        "acpitz\n",
		"class/hwmon/hwmon0/temp1_input": "garbage\n",
	})

	groups := collect(t, root)
	require.Len(t, groups, 1)

	_, ok := groups[0].Sources[0].Read()
	assert.False(t, ok)
}
