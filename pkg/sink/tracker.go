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
	"context"
	"fmt"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/NVIDIA/hwstat/pkg/defaults"
	"github.com/NVIDIA/hwstat/pkg/errors"
	"github.com/NVIDIA/hwstat/pkg/sampler"
)

// Tracker records when the last notification was rendered. A producer
// that stops ticking is only visible as missing notifications; Check turns
// that silence into a readiness failure.
type Tracker struct {
	store      *sampler.Store
	clock      clock.PassiveClock
	staleAfter time.Duration

	mu      sync.Mutex
	started time.Time
	last    time.Time
	tick    uint64
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithTrackerClock sets the clock used for staleness.
func WithTrackerClock(c clock.PassiveClock) TrackerOption {
	return func(t *Tracker) {
		t.clock = c
	}
}

// WithStaleAfter sets how long silence is tolerated. Default is
// defaults.StaleAfter.
func WithStaleAfter(d time.Duration) TrackerOption {
	return func(t *Tracker) {
		t.staleAfter = d
	}
}

// NewTracker returns a tracker for store. The grace period starts now.
func NewTracker(store *sampler.Store, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		store:      store,
		clock:      clock.RealClock{},
		staleAfter: defaults.StaleAfter,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.started = t.clock.Now()
	return t
}

// Render implements Renderer.
func (t *Tracker) Render(_ context.Context, snap sampler.Snapshot) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = t.clock.Now()
	t.tick = snap.Tick
	return nil
}

// LastSeen returns the time and tick of the most recent render.
func (t *Tracker) LastSeen() (time.Time, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.tick
}

// Check reports a poisoned store or a producer that has been silent for
// longer than the stale period. It has the shape of server.ReadinessCheck.
func (t *Tracker) Check() error {
	if t.store != nil && t.store.Poisoned() {
		return sampler.ErrPoisoned
	}

	t.mu.Lock()
	ref, tick := t.last, t.tick
	if ref.IsZero() {
		ref = t.started
	}
	t.mu.Unlock()

	if silent := t.clock.Since(ref); silent > t.staleAfter {
		return errors.NewWithContext(errors.ErrCodeUnavailable,
			fmt.Sprintf("no sample for %s", silent.Truncate(time.Millisecond)),
			map[string]any{"tick": tick, "staleAfter": t.staleAfter.String()})
	}
	return nil
}
