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
	"log/slog"

	"github.com/coreos/go-systemd/v22/daemon"

	"github.com/NVIDIA/hwstat/pkg/defaults"
	"github.com/NVIDIA/hwstat/pkg/sampler"
)

// notifyFunc matches daemon.SdNotify.
type notifyFunc func(unsetEnvironment bool, state string) (bool, error)

// Watchdog reports sampling progress to systemd: READY=1 with the first
// rendered tick, then WATCHDOG=1 with every tick after it. Outside systemd
// every notification is a no-op.
type Watchdog struct {
	notify  notifyFunc
	ready   bool
	enabled bool
}

// NewWatchdog returns a watchdog sink using the process' NOTIFY_SOCKET.
func NewWatchdog() *Watchdog {
	return newWatchdog(daemon.SdNotify)
}

func newWatchdog(notify notifyFunc) *Watchdog {
	w := &Watchdog{notify: notify}

	interval, err := daemon.SdWatchdogEnabled(false)
	switch {
	case err != nil:
		slog.Warn("invalid systemd watchdog settings", "error", err)
	case interval > 0 && interval < defaults.SamplePeriod:
		slog.Warn("systemd watchdog interval shorter than sample period",
			"interval", interval, "period", defaults.SamplePeriod)
	case interval > 0:
		slog.Debug("systemd watchdog enabled", "interval", interval)
	}
	return w
}

// Render implements Renderer. Notification failures are logged and never
// interrupt consumption.
func (w *Watchdog) Render(_ context.Context, snap sampler.Snapshot) error {
	state := daemon.SdNotifyWatchdog
	if !w.ready {
		state = daemon.SdNotifyReady
	}
	state = fmt.Sprintf("%s\nSTATUS=tick %d, %d sources", state, snap.Tick, len(snap.Readings))

	sent, err := w.notify(false, state)
	if err != nil {
		slog.Warn("systemd notification failed", "error", err)
		return nil
	}
	if !w.ready {
		w.enabled = sent
		if !sent {
			slog.Debug("not running under systemd, notifications disabled")
		}
	}
	w.ready = true
	return nil
}

// Stopping tells systemd the service is shutting down.
func (w *Watchdog) Stopping() {
	if !w.enabled {
		return
	}
	if _, err := w.notify(false, daemon.SdNotifyStopping); err != nil {
		slog.Warn("systemd notification failed", "error", err)
	}
}
