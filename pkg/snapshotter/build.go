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
	"os"

	"github.com/google/uuid"

	"github.com/NVIDIA/hwstat/pkg/collector/cpufreq"
	"github.com/NVIDIA/hwstat/pkg/header"
	"github.com/NVIDIA/hwstat/pkg/measurement"
	"github.com/NVIDIA/hwstat/pkg/sampler"
	"github.com/NVIDIA/hwstat/pkg/source"
)

// session identifies this process in every document it exports, so
// snapshots fetched from the same server can be told apart from those of a
// restarted one.
var session = uuid.NewString()

// Session returns the identifier stamped into exported documents.
func Session() string {
	return session
}

// FromStore converts a store snapshot into an exported Snapshot document.
// Sources are grouped by device family, CPU frequency first, preserving
// catalogue order inside each family.
func FromStore(s sampler.Snapshot, version string) *Snapshot {
	snap := NewSnapshot()
	snap.Header = header.New(stamp(header.KindSnapshot, version, header.WithTimestamp(s.Taken))...)
	snap.Tick = s.Tick
	snap.Poisoned = s.Poisoned

	builders := make(map[measurement.Type]*measurement.MeasurementBuilder, len(measurement.Types))
	for _, r := range s.Readings {
		t := typeOf(r.Kind)
		b, ok := builders[t]
		if !ok {
			b = measurement.NewMeasurement(t)
			builders[t] = b
		}
		b.WithSubtypeBuilder(subtype(r))
	}

	for _, t := range measurement.Types {
		if b, ok := builders[t]; ok {
			snap.Measurements = append(snap.Measurements, b.Build())
		}
	}
	return snap
}

// NewCatalogue describes groups without reading any source.
func NewCatalogue(groups []source.Group, version string) *Catalogue {
	c := &Catalogue{
		Header:  header.New(stamp(header.KindCatalogue, version)...),
		Sources: make([]CatalogueEntry, 0),
	}

	for _, g := range groups {
		for _, src := range g.Sources {
			e := CatalogueEntry{
				Group:  g.Name,
				Source: src.Name(),
				Unit:   src.Unit(),
			}
			if k, ok := src.(source.Kinded); ok {
				e.Kind = k.Kind()
			}
			c.Sources = append(c.Sources, e)
		}
	}
	return c
}

// stamp returns the header options shared by every document of this
// process, followed by extra.
func stamp(kind header.Kind, version string, extra ...header.Option) []header.Option {
	host, _ := os.Hostname()
	opts := []header.Option{
		header.WithKind(kind),
		header.WithVersion(version),
		header.WithMetadata(header.MetadataSession, session),
		header.WithMetadata(header.MetadataHostname, host),
	}
	return append(opts, extra...)
}

func typeOf(kind string) measurement.Type {
	if kind == cpufreq.Kind {
		return measurement.TypeCPUFreq
	}
	return measurement.TypeHwmon
}

func subtype(r sampler.Reading) *measurement.SubtypeBuilder {
	b := measurement.NewSubtypeBuilder(sampler.Key{Group: r.Group, Source: r.Source}.String()).
		SetFloat64(measurement.KeyCurrent, r.Current).
		SetFloat64(measurement.KeyMinimum, r.Min).
		SetFloat64(measurement.KeyMaximum, r.Max).
		SetBool(measurement.KeyFaulted, r.Faulted).
		SetUint64(measurement.KeySamples, r.Samples).
		WithContext(measurement.ContextGroup, r.Group)
	if r.Unit != "" {
		b.SetString(measurement.KeyUnit, r.Unit)
	}
	if r.Kind != "" {
		b.WithContext(measurement.ContextKind, r.Kind)
	}
	return b
}
