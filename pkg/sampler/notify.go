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
	"sync"
)

// ErrReceiverClosed is returned by Sender.Send once the receiving side has
// been closed. The scheduler treats it as the signal to stop.
var ErrReceiverClosed = stderrors.New("notification receiver closed")

// NewChannel returns the two ends of an unbounded, payload-free
// notification channel. Send never blocks; notifications sent while the
// receiver is busy coalesce into a pending count.
func NewChannel() (*Sender, *Receiver) {
	ch := &channel{wake: make(chan struct{}, 1)}
	return &Sender{ch: ch}, &Receiver{ch: ch}
}

type channel struct {
	mu      sync.Mutex
	pending uint64
	closed  bool
	wake    chan struct{}
}

// Sender is the producer end, owned by the sampling engine.
type Sender struct {
	ch *channel
}

// Send queues one notification. It fails only when the receiver is closed.
func (s *Sender) Send() error {
	c := s.ch
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrReceiverClosed
	}
	c.pending++
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
	return nil
}

// Receiver is the consumer end, owned by the presentation side.
type Receiver struct {
	ch *channel
}

// C is signalled whenever at least one notification is pending.
func (r *Receiver) C() <-chan struct{} {
	return r.ch.wake
}

// Drain returns the number of notifications received since the previous
// call and resets the count.
func (r *Receiver) Drain() uint64 {
	c := r.ch
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.pending
	c.pending = 0
	return n
}

// Close disconnects the receiver. Subsequent sends fail with
// ErrReceiverClosed. Close is idempotent.
func (r *Receiver) Close() {
	c := r.ch
	c.mu.Lock()
	c.closed = true
	c.pending = 0
	c.mu.Unlock()
}
