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
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hwstat/pkg/errors"
	"github.com/NVIDIA/hwstat/pkg/sampler"
)

// recordHandler keeps every record logged through it.
type recordHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *recordHandler) WithAttrs([]slog.Attr) slog.Handler       { return h }
func (h *recordHandler) WithGroup(string) slog.Handler            { return h }

func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

// matching returns the attributes of every record with message msg.
func (h *recordHandler) matching(msg string) []map[string]any {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []map[string]any
	for _, r := range h.records {
		if r.Message != msg {
			continue
		}
		attrs := make(map[string]any)
		r.Attrs(func(a slog.Attr) bool {
			attrs[a.Key] = a.Value.Any()
			return true
		})
		out = append(out, attrs)
	}
	return out
}

func captureLogs(t *testing.T) *recordHandler {
	t.Helper()
	h := &recordHandler{}
	prev := slog.Default()
	slog.SetDefault(slog.New(h))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return h
}

func TestEngineLatchesUndecodableSensor(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		code errors.ErrorCode
	}{
		{"invalid utf8", "\xff\xfe\xfd\n", errors.ErrCodeEncoding},
		{"not a number", "abc\n", errors.ErrCodeFormat},
		{"too long", "123456789012345678901234567890\n", errors.ErrCodeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, map[string]string{
				"class/hwmon/hwmon0/name":        "nct6775\n",
				"class/hwmon/hwmon0/temp1_input": "41000\n",
				"class/hwmon/hwmon0/temp2_input": tt.raw,
			})
			logs := captureLogs(t)

			cat, err := sampler.FromGroups(collect(t, root))
			require.NoError(t, err)
			store := sampler.NewStore(cat)
			tx, rx := sampler.NewChannel()
			defer rx.Close()
			engine := sampler.NewEngine(store, tx)

			for range 3 {
				require.NoError(t, engine.Tick())
			}

			snap := store.Snapshot()
			require.Len(t, snap.Readings, 2)

			healthy, broken := snap.Readings[0], snap.Readings[1]
			assert.Equal(t, "temp1", healthy.Source)
			assert.False(t, healthy.Faulted)
			assert.Equal(t, uint64(3), healthy.Samples)
			assert.Equal(t, 41.0, healthy.Current)

			assert.Equal(t, "temp2", broken.Source)
			assert.True(t, broken.Faulted)
			assert.Zero(t, broken.Samples)
			assert.Zero(t, broken.Current)

			// one failed read on the first tick, none afterwards
			failures := logs.matching("sensor read failed")
			require.Len(t, failures, 1)
			assert.Equal(t, string(tt.code), failures[0]["code"])
			assert.Equal(t, "temp2", failures[0]["source"])
			assert.Contains(t, failures[0]["path"], "temp2_input")

			assert.Len(t, logs.matching("source faulted, excluding it from further sampling"), 1)
		})
	}
}
