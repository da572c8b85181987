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
	"sync"
	"time"
)

// Store guards the catalogue shared by the sampling engine and any number
// of readers. The engine holds the lock for a whole tick, so readers always
// observe a set of records that were all updated by the same tick.
type Store struct {
	mu       sync.Mutex
	cat      *Catalogue
	poisoned bool
	ticks    uint64
	lastTick time.Time
}

// NewStore seals cat and takes ownership of it. The set of records is fixed
// from here on.
func NewStore(cat *Catalogue) *Store {
	cat.sealed = true
	return &Store{cat: cat}
}

// Snapshot is a point-in-time copy of the store.
type Snapshot struct {
	// Tick is the number of completed ticks when the copy was taken.
	Tick     uint64    `json:"tick" yaml:"tick"`
	Taken    time.Time `json:"taken" yaml:"taken"`
	Poisoned bool      `json:"poisoned,omitempty" yaml:"poisoned,omitempty"`
	Readings []Reading `json:"readings" yaml:"readings"`
}

// Snapshot copies every record under the lock, in catalogue order.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := Snapshot{
		Tick:     s.ticks,
		Taken:    s.lastTick,
		Poisoned: s.poisoned,
		Readings: make([]Reading, 0, s.cat.Len()),
	}
	for k, r := range s.cat.All() {
		out.Readings = append(out.Readings, r.reading(k))
	}
	return out
}

// View runs fn with the lock held. fn must not retain the catalogue or its
// records after returning.
func (s *Store) View(fn func(*Catalogue)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.cat)
}

// Keys returns the catalogue keys in order. The result never changes over
// the life of the store.
func (s *Store) Keys() []Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cat.Keys()
}

// Poisoned reports whether a tick failed part way through.
func (s *Store) Poisoned() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.poisoned
}

// LastTick returns the completion time of the most recent tick, or the zero
// time before the first one.
func (s *Store) LastTick() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTick
}
