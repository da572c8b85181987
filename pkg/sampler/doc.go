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

// Package sampler implements the periodic sampling engine.
//
// A Catalogue maps (group, source) keys to Records in discovery order. Once
// handed to NewStore the catalogue is sealed and the set of records never
// changes. An Engine updates every record in one Tick while holding the
// store lock, then sends a single payload-free notification. A Scheduler
// repeats Tick every defaults.SamplePeriod until the notification receiver
// is closed.
//
//	tx, rx := sampler.NewChannel()
//	store := sampler.NewStore(cat)
//	sched := sampler.NewScheduler(sampler.NewEngine(store, tx))
//	done := sched.Start()
//
//	for range rx.C() {
//	    rx.Drain()
//	    render(store.Snapshot())
//	}
//
// # Faults
//
// A source whose read fails is latched as faulted: its statistics freeze
// and it is never read again. A panic inside a source marks the whole store
// poisoned; the panicking tick sends no notification and every later Tick
// returns ErrPoisoned.
//
// # Statistics
//
// Records start at zero and fold min and max from that starting point.
// Record.Samples tells a cold-start zero apart from a measured one.
package sampler
