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
	stderrors "errors"
	"log/slog"
	"sync/atomic"
	"time"

	"k8s.io/utils/clock"

	"github.com/NVIDIA/hwstat/pkg/defaults"
)

// State is the lifecycle phase of a Scheduler.
type State int32

const (
	StateIdle State = iota
	StateTicking
	StateSleeping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTicking:
		return "ticking"
	case StateSleeping:
		return "sleeping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Ticker performs one sampling pass.
type Ticker interface {
	Tick() error
}

// Scheduler drives a Ticker on a fixed period until the notification
// receiver goes away or a tick fails.
type Scheduler struct {
	ticker Ticker
	clock  clock.Clock
	period time.Duration
	state  atomic.Int32
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithClock sets the clock the scheduler sleeps on.
func WithClock(c clock.Clock) SchedulerOption {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// NewScheduler returns an idle scheduler for t using defaults.SamplePeriod.
func NewScheduler(t Ticker, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		ticker: t,
		clock:  clock.RealClock{},
		period: defaults.SamplePeriod,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle phase.
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

func (s *Scheduler) setState(st State) {
	s.state.Store(int32(st))
}

// Run ticks immediately and then once per period, sleeping between ticks.
// A tick in progress is always completed. Run returns nil when the
// receiver has been closed and the tick's error otherwise.
func (s *Scheduler) Run() error {
	defer s.setState(StateStopped)

	slog.Debug("sampling scheduler started", "period", s.period.String())
	for {
		s.setState(StateTicking)
		if err := s.ticker.Tick(); err != nil {
			if stderrors.Is(err, ErrReceiverClosed) {
				slog.Info("notification receiver closed, stopping sampling")
				return nil
			}
			return err
		}

		s.setState(StateSleeping)
		<-s.clock.After(s.period)
	}
}

// Start runs the scheduler on its own goroutine. The returned channel
// yields Run's result once and is then closed.
func (s *Scheduler) Start() <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- s.Run()
	}()
	return done
}
