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

package sampler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/NVIDIA/hwstat/pkg/source"
)

// funcSource adapts a read function to source.Source and counts reads.
type funcSource struct {
	name  string
	unit  string
	read  func() (float64, bool)
	reads atomic.Int64
}

func (f *funcSource) Read() (float64, bool) {
	f.reads.Add(1)
	return f.read()
}

func (f *funcSource) Unit() string { return f.unit }
func (f *funcSource) Name() string { return f.name }

// seq returns a source yielding vals in order and then failing.
func seq(name string, vals ...float64) *funcSource {
	i := 0
	return &funcSource{name: name, read: func() (float64, bool) {
		if i >= len(vals) {
			return 0, false
		}
		v := vals[i]
		i++
		return v, true
	}}
}

func constant(name string, v float64) *funcSource {
	return &funcSource{name: name, read: func() (float64, bool) { return v, true }}
}

func failing(name string) *funcSource {
	return &funcSource{name: name, read: func() (float64, bool) { return 0, false }}
}

func newTestStore(t *testing.T, groups ...source.Group) *Store {
	t.Helper()
	cat, err := FromGroups(groups)
	if err != nil {
		t.Fatalf("FromGroups: %v", err)
	}
	return NewStore(cat)
}

// waitNotified blocks until rx has at least one pending notification and
// returns the drained count.
func waitNotified(t *testing.T, rx *Receiver) uint64 {
	t.Helper()
	select {
	case <-rx.C():
		return rx.Drain()
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
		return 0
	}
}
