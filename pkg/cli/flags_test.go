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

package cli

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hwstat/pkg/defaults"
	"github.com/NVIDIA/hwstat/pkg/serializer"
)

// setenv sets key for the test, or removes it when value is empty.
func setenv(t *testing.T, key, value string) {
	t.Helper()
	t.Setenv(key, value)
	if value == "" {
		require.NoError(t, os.Unsetenv(key))
	}
}

// parse runs a bare command carrying flags with args and hands the parsed
// command to check.
func parse(t *testing.T, flags []cli.Flag, args []string, check func(*cli.Command)) {
	t.Helper()
	called := false
	cmd := &cli.Command{
		Name:  "test",
		Flags: flags,
		Action: func(_ context.Context, c *cli.Command) error {
			called = true
			check(c)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
	require.True(t, called, "action not invoked")
}

func TestCommandDefaultFormats(t *testing.T) {
	want := map[string]string{
		"list":     string(serializer.FormatYAML),
		"snapshot": string(serializer.FormatYAML),
		"watch":    string(serializer.FormatTable),
	}

	for _, c := range newRootCmd().Commands {
		t.Run(c.Name, func(t *testing.T) {
			var got string
			for _, f := range c.Flags {
				if sf, ok := f.(*cli.StringFlag); ok && sf.Name == "format" {
					got = sf.Value
					assert.Equal(t, []string{"t"}, sf.Aliases)
				}
			}
			assert.Equal(t, want[c.Name], got)
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		args    []string
		want    serializer.Format
		wantErr bool
	}{
		{"default", "", nil, serializer.FormatYAML, false},
		{"short alias", "", []string{"-t", "json"}, serializer.FormatJSON, false},
		{"long flag", "", []string{"--format", "table"}, serializer.FormatTable, false},
		{"environment", "json", nil, serializer.FormatJSON, false},
		{"flag beats environment", "json", []string{"-t", "table"}, serializer.FormatTable, false},
		{"unknown", "", []string{"-t", "xml"}, "", true},
		{"unknown from environment", "csv", nil, "", true},
		{"empty", "", []string{"-t", ""}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setenv(t, "HWSTAT_FORMAT", tt.env)
			parse(t, []cli.Flag{formatFlag(serializer.FormatYAML)}, tt.args, func(c *cli.Command) {
				got, err := parseOutputFormat(c)
				if tt.wantErr {
					assert.Error(t, err)
					return
				}
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		})
	}
}

func TestFilterFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"none", nil, nil},
		{"single", []string{"--filter", "coretemp/*"}, []string{"coretemp/*"}},
		{"repeated", []string{"--filter", "coretemp/*", "--filter", "CPU/CPU 0"}, []string{"coretemp/*", "CPU/CPU 0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parse(t, []cli.Flag{filterFlag()}, tt.args, func(c *cli.Command) {
				got := c.StringSlice("filter")
				if len(tt.want) == 0 {
					assert.Empty(t, got)
					return
				}
				assert.Equal(t, tt.want, got)
			})
		})
	}
}

func TestSysRootFlag(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		setenv(t, "HWSTAT_SYS_ROOT", "")
		parse(t, []cli.Flag{sysRootFlag()}, nil, func(c *cli.Command) {
			assert.Equal(t, defaults.SysRoot, c.String("sys-root"))
		})
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("HWSTAT_SYS_ROOT", "/host/sys")
		parse(t, []cli.Flag{sysRootFlag()}, nil, func(c *cli.Command) {
			assert.Equal(t, "/host/sys", c.String("sys-root"))
		})
	})
}

func TestFlagsAreNotShared(t *testing.T) {
	first := formatFlag(serializer.FormatYAML)
	parse(t, []cli.Flag{first}, []string{"-t", "json"}, func(*cli.Command) {})

	parse(t, []cli.Flag{formatFlag(serializer.FormatYAML)}, nil, func(c *cli.Command) {
		assert.Equal(t, "yaml", c.String("format"))
	})
}

func TestWatchCommandFlags(t *testing.T) {
	var watch *cli.Command
	for _, c := range newRootCmd().Commands {
		if c.Name == "watch" {
			watch = c
		}
	}
	require.NotNil(t, watch)

	names := make(map[string]bool)
	for _, f := range watch.Flags {
		for _, n := range f.Names() {
			names[n] = true
		}
	}
	for _, n := range []string{"filter", "format", "t", "no-clear"} {
		assert.True(t, names[n], "watch is missing --%s", n)
	}
}
