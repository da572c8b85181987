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
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/NVIDIA/hwstat/pkg/sampler"
)

// Renderer presents one snapshot of the store. Render is called from the
// consuming goroutine only, never concurrently with itself.
type Renderer interface {
	Render(ctx context.Context, snap sampler.Snapshot) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, snap sampler.Snapshot) error

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, snap sampler.Snapshot) error {
	return f(ctx, snap)
}

type multi []Renderer

// Multi renders every snapshot with each of rs in order. All renderers run
// even if one fails; their errors are joined.
func Multi(rs ...Renderer) Renderer {
	return multi(rs)
}

func (m multi) Render(ctx context.Context, snap sampler.Snapshot) error {
	var errs []error
	for _, r := range m {
		if err := r.Render(ctx, snap); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// Consume waits for tick notifications on rx and hands a fresh store
// snapshot to r for each wake-up. Notifications that pile up while r is
// busy are drained together and produce a single render.
//
// Consume returns nil when ctx is done and the render error otherwise. In
// both cases it closes rx on the way out, which stops the producer on its
// next send.
func Consume(ctx context.Context, rx *sampler.Receiver, store *sampler.Store, r Renderer) error {
	defer rx.Close()

	for {
		select {
		case <-ctx.Done():
			slog.Debug("consumer stopping", "reason", ctx.Err())
			return nil
		case <-rx.C():
		}

		n := rx.Drain()
		if n == 0 {
			continue
		}
		if n > 1 {
			notificationsCoalesced.Add(float64(n - 1))
		}

		snap := store.Snapshot()
		if err := r.Render(ctx, snap); err != nil {
			rendersTotal.WithLabelValues("error").Inc()
			return fmt.Errorf("render tick %d: %w", snap.Tick, err)
		}
		rendersTotal.WithLabelValues("ok").Inc()
	}
}
