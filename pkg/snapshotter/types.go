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
	"strconv"

	"github.com/NVIDIA/hwstat/pkg/errors"
	"github.com/NVIDIA/hwstat/pkg/header"
	"github.com/NVIDIA/hwstat/pkg/measurement"
)

// Snapshotter defines the interface for producing hwstat documents.
type Snapshotter interface {
	Measure(ctx context.Context) error
}

// NewSnapshot creates a new Snapshot instance with an initialized Measurements slice.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Measurements: make([]*measurement.Measurement, 0),
	}
}

// Snapshot is the exported form of the sampling store: one measurement per
// device family, one subtype per source.
type Snapshot struct {
	header.Header `json:",inline" yaml:",inline"`

	// Tick is the number of completed sampling ticks behind the values.
	Tick uint64 `json:"tick" yaml:"tick"`

	// Poisoned is set when a tick failed part way through; values may be
	// inconsistent across sources.
	Poisoned bool `json:"poisoned,omitempty" yaml:"poisoned,omitempty"`

	// Measurements contains the sampled sources grouped by device family.
	Measurements []*measurement.Measurement `json:"measurements" yaml:"measurements"`
}

// Filter returns a copy holding only the sources whose "<group>/<source>"
// name matches one of patterns. Measurements left without sources are
// dropped. An empty pattern list returns s unchanged.
func (s *Snapshot) Filter(patterns []string) *Snapshot {
	if len(patterns) == 0 {
		return s
	}
	out := *s
	out.Measurements = make([]*measurement.Measurement, 0, len(s.Measurements))
	for _, m := range s.Measurements {
		if f := measurement.FilterIn(m, patterns); len(f.Subtypes) > 0 {
			out.Measurements = append(out.Measurements, f)
		}
	}
	return &out
}

// TableHeader implements serializer.Tabular.
func (s *Snapshot) TableHeader() []string {
	return []string{"SOURCE", "CURRENT", "MIN", "MAX", "UNIT", "STATUS"}
}

// TableRows implements serializer.Tabular.
func (s *Snapshot) TableRows() [][]string {
	var rows [][]string
	for _, m := range s.Measurements {
		for i := range m.Subtypes {
			st := &m.Subtypes[i]
			unit, _ := st.GetString(measurement.KeyUnit)
			rows = append(rows, []string{
				st.Name,
				number(st, measurement.KeyCurrent),
				number(st, measurement.KeyMinimum),
				number(st, measurement.KeyMaximum),
				unit,
				status(st),
			})
		}
	}
	return rows
}

func number(st *measurement.Subtype, key string) string {
	v, err := st.GetFloat64(key)
	if err != nil {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func status(st *measurement.Subtype) string {
	if faulted, err := st.GetBool(measurement.KeyFaulted); err == nil && faulted {
		return "faulted"
	}
	if n, err := st.GetUint64(measurement.KeySamples); err == nil && n == 0 {
		return "pending"
	}
	return "ok"
}

// Validate checks a snapshot read back from a file or another hwstat
// instance before it is rendered.
func (s *Snapshot) Validate() error {
	if err := s.Expect(header.KindSnapshot); err != nil {
		return err
	}
	for i, m := range s.Measurements {
		if err := m.Validate(); err != nil {
			return errors.WrapWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid measurement %d", i), err,
				map[string]any{"type": m.Type.String()})
		}
	}
	return nil
}

type Catalogue struct {
	header.Header `json:",inline" yaml:",inline"`

	Sources []CatalogueEntry `json:"sources" yaml:"sources"`
}

// CatalogueEntry describes one discovered source.
type CatalogueEntry struct {
	Group  string `json:"group" yaml:"group"`
	Source string `json:"source" yaml:"source"`
	Unit   string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Kind   string `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// TableHeader implements serializer.Tabular.
func (c *Catalogue) TableHeader() []string {
	return []string{"GROUP", "SOURCE", "KIND", "UNIT"}
}

// TableRows implements serializer.Tabular.
func (c *Catalogue) TableRows() [][]string {
	rows := make([][]string, len(c.Sources))
	for i, e := range c.Sources {
		rows[i] = []string{e.Group, e.Source, e.Kind, e.Unit}
	}
	return rows
}
