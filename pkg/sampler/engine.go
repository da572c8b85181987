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
	"fmt"
	"log/slog"

	"k8s.io/utils/clock"

	"github.com/NVIDIA/hwstat/pkg/errors"
)

// ErrPoisoned is returned by Tick when a previous tick panicked part way
// through and left the store in an unknown state.
var ErrPoisoned = errors.New(errors.ErrCodePoisoned, "sampling store poisoned by a failed tick")

// Notifier receives one notification per completed tick.
type Notifier interface {
	Send() error
}

// Engine performs sampling ticks over a Store.
type Engine struct {
	store *Store
	tx    Notifier
	clock clock.PassiveClock
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEngineClock sets the clock used to timestamp ticks.
func WithEngineClock(c clock.PassiveClock) EngineOption {
	return func(e *Engine) {
		e.clock = c
	}
}

// NewEngine returns an engine that samples store and reports each tick to tx.
func NewEngine(store *Store, tx Notifier, opts ...EngineOption) *Engine {
	e := &Engine{
		store: store,
		tx:    tx,
		clock: clock.RealClock{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tick reads every healthy source once while holding the store lock, then
// sends exactly one notification after the lock is released.
//
// It returns ErrPoisoned (wrapped) if a source panicked during this or an
// earlier tick, and ErrReceiverClosed if the tick completed but nobody is
// listening any more.
func (e *Engine) Tick() error {
	start := e.clock.Now()
	if err := e.sample(); err != nil {
		ticksTotal.WithLabelValues("poisoned").Inc()
		return err
	}
	tickDuration.Observe(e.clock.Since(start).Seconds())
	ticksTotal.WithLabelValues("ok").Inc()

	if err := e.tx.Send(); err != nil {
		return err
	}
	notificationsSent.Inc()
	return nil
}

func (e *Engine) sample() (err error) {
	s := e.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poisoned {
		return ErrPoisoned
	}

	defer func() {
		if r := recover(); r != nil {
			s.poisoned = true
			slog.Error("source panicked during tick, store poisoned",
				"tick", s.ticks+1, "panic", r)
			err = fmt.Errorf("tick %d: %v: %w", s.ticks+1, r, ErrPoisoned)
		}
	}()

	faulted := 0
	for k, r := range s.cat.All() {
		read, ok := r.Sample()
		switch {
		case !read:
		case ok:
			sourceReadsTotal.WithLabelValues("ok").Inc()
		default:
			sourceReadsTotal.WithLabelValues("fault").Inc()
			slog.Warn("source faulted, excluding it from further sampling",
				"group", k.Group, "source", k.Source)
		}
		if r.Faulted {
			faulted++
		}
	}
	sourcesFaulted.Set(float64(faulted))

	s.ticks++
	s.lastTick = e.clock.Now()
	return nil
}
