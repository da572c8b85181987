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
	"io"
	"os"
	"time"

	"github.com/NVIDIA/hwstat/pkg/sampler"
	"github.com/NVIDIA/hwstat/pkg/serializer"
	"github.com/NVIDIA/hwstat/pkg/snapshotter"
)

// clearScreen moves the cursor home and erases the display.
const clearScreen = "\033[H\033[2J"

// Console writes every snapshot to a terminal or stream.
type Console struct {
	out     io.Writer
	format  serializer.Format
	version string
	filter  []string
	clear   bool
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithOutput sets the destination. Default is stdout.
func WithOutput(w io.Writer) ConsoleOption {
	return func(c *Console) {
		c.out = w
	}
}

// WithFormat sets the output format. Default is table.
func WithFormat(f serializer.Format) ConsoleOption {
	return func(c *Console) {
		c.format = f
	}
}

// WithVersion sets the version stamped into each document.
func WithVersion(v string) ConsoleOption {
	return func(c *Console) {
		c.version = v
	}
}

// WithFilter keeps only sources matching one of the wildcard patterns.
func WithFilter(patterns []string) ConsoleOption {
	return func(c *Console) {
		c.filter = patterns
	}
}

// WithClear redraws the table in place instead of appending to the stream.
// Only the table format is redrawn.
func WithClear(clear bool) ConsoleOption {
	return func(c *Console) {
		c.clear = clear
	}
}

// NewConsole returns a console renderer.
func NewConsole(opts ...ConsoleOption) *Console {
	c := &Console{
		out:    os.Stdout,
		format: serializer.FormatTable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render implements Renderer.
func (c *Console) Render(ctx context.Context, snap sampler.Snapshot) error {
	doc := snapshotter.FromStore(snap, c.version).Filter(c.filter)

	if c.format == serializer.FormatTable {
		if c.clear {
			fmt.Fprint(c.out, clearScreen)
		}
		fmt.Fprintf(c.out, "tick %d at %s\n\n", snap.Tick, snap.Taken.Format(time.TimeOnly))
	}
	return serializer.NewWriter(c.format, c.out).Serialize(ctx, doc)
}
