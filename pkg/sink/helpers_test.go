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

package sink

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hwstat/pkg/sampler"
	"github.com/NVIDIA/hwstat/pkg/source"
)

type stubSource struct {
	name, unit, kind string
	vals             []float64
	i                int
}

func (s *stubSource) Read() (float64, bool) {
	if s.i >= len(s.vals) {
		return 0, false
	}
	v := s.vals[s.i]
	s.i++
	return v, true
}

func (s *stubSource) Unit() string { return s.unit }
func (s *stubSource) Name() string { return s.name }
func (s *stubSource) Kind() string { return s.kind }

// newTestEngine returns a store with one temperature and one fan source
// plus the engine and receiver driving it.
func newTestEngine(t *testing.T, temps ...float64) (*sampler.Store, *sampler.Engine, *sampler.Sender, *sampler.Receiver) {
	t.Helper()
	groups := []source.Group{
		{Name: "coretemp", Sources: []source.Source{
			&stubSource{name: "Core 0", unit: "°C", kind: "temp", vals: temps},
		}},
		{Name: "nct6775", Sources: []source.Source{
			&stubSource{name: "fan1", unit: "RPM", kind: "fan"},
		}},
	}
	cat, err := sampler.FromGroups(groups)
	require.NoError(t, err)
	store := sampler.NewStore(cat)
	tx, rx := sampler.NewChannel()
	t.Cleanup(rx.Close)
	return store, sampler.NewEngine(store, tx), tx, rx
}
