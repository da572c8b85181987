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

package snapshotter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/NVIDIA/hwstat/pkg/collector"
	"github.com/NVIDIA/hwstat/pkg/errors"
	"github.com/NVIDIA/hwstat/pkg/sampler"
	"github.com/NVIDIA/hwstat/pkg/serializer"
	"github.com/NVIDIA/hwstat/pkg/source"
)

// NodeSnapshotter samples the sensors of the current node once and
// serializes the result.
type NodeSnapshotter struct {
	// Version is the hwstat version stamped into the document.
	Version string

	// Factory is the collector factory to use. If nil, the default factory is used.
	Factory collector.Factory

	// Serializer is the serializer to use for output. If nil, a default stdout JSON serializer is used.
	Serializer serializer.Serializer

	// Filter keeps only sources whose "<group>/<source>" name matches one
	// of the wildcard patterns. Empty keeps all.
	Filter []string
}

// Measure discovers every source, runs a single sampling tick and
// serializes the resulting Snapshot. Discovery failures are fatal; a
// source that fails its read is reported as faulted in the document.
func (n *NodeSnapshotter) Measure(ctx context.Context) error {
	start := time.Now()
	defer func() {
		snapshotCollectionDuration.Observe(time.Since(start).Seconds())
	}()

	groups, err := n.discover(ctx)
	if err != nil {
		snapshotCollectionTotal.WithLabelValues("error").Inc()
		return err
	}
	defer closeGroups(groups)

	cat, err := sampler.FromGroups(groups)
	if err != nil {
		snapshotCollectionTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to build catalogue: %w", err)
	}
	store := sampler.NewStore(cat)

	tx, rx := sampler.NewChannel()
	defer rx.Close()

	if err := sampler.NewEngine(store, tx).Tick(); err != nil {
		snapshotCollectionTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("sampling tick failed: %w", err)
	}

	snap := FromStore(store.Snapshot(), n.Version).Filter(n.Filter)

	snapshotCollectionTotal.WithLabelValues("success").Inc()
	snapshotMeasurementCount.Set(float64(len(snap.Measurements)))
	slog.Debug("snapshot complete",
		slog.Int("sources", cat.Len()),
		slog.Int("measurements", len(snap.Measurements)))

	return n.serialize(ctx, snap)
}

// List discovers every source and serializes the Catalogue without
// sampling.
func (n *NodeSnapshotter) List(ctx context.Context) error {
	groups, err := n.discover(ctx)
	if err != nil {
		return err
	}
	defer closeGroups(groups)

	return n.serialize(ctx, NewCatalogue(groups, n.Version))
}

func (n *NodeSnapshotter) discover(ctx context.Context) ([]source.Group, error) {
	if n.Factory == nil {
		n.Factory = collector.NewDefaultFactory()
	}

	slog.Debug("starting node discovery")

	groups, err := collector.Discover(ctx, n.Factory)
	if err != nil {
		slog.Error("discovery failed", errors.LogAttrs(err)...)
		return nil, err
	}
	return groups, nil
}

func (n *NodeSnapshotter) serialize(ctx context.Context, doc any) error {
	if n.Serializer == nil {
		n.Serializer = serializer.NewStdoutWriter(serializer.FormatJSON)
	}

	if err := n.Serializer.Serialize(ctx, doc); err != nil {
		slog.Error("failed to serialize", slog.String("error", err.Error()))
		return fmt.Errorf("failed to serialize: %w", err)
	}
	return nil
}

func closeGroups(groups []source.Group) {
	if err := source.CloseAll(groups); err != nil {
		slog.Warn("failed to close sources", slog.String("error", err.Error()))
	}
}
