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

import "github.com/NVIDIA/hwstat/pkg/source"

// Record holds the running statistics of one source.
//
// Min, Max and Current start at zero and Min/Max are folded from that
// starting point, so a source that only ever reports positive values keeps
// Min at 0. Samples counts successful reads and distinguishes that cold
// start from a real zero reading.
//
// Once Faulted is set it is never cleared and the source is no longer read.
type Record struct {
	Source  source.Source
	Current float64
	Min     float64
	Max     float64
	Faulted bool
	Samples uint64
}

// NewRecord returns a zeroed, healthy record for src.
func NewRecord(src source.Source) *Record {
	return &Record{Source: src}
}

// Apply folds one read result into the record. A failed read latches the
// fault flag and leaves every statistic untouched.
func (r *Record) Apply(v float64, ok bool) {
	if r.Faulted {
		return
	}
	if !ok {
		r.Faulted = true
		return
	}
	r.Current = v
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
	r.Samples++
}

// Sample reads the source and applies the result unless the record has
// already faulted. read reports whether the source was consulted and ok
// whether that read succeeded.
func (r *Record) Sample() (read, ok bool) {
	if r.Faulted {
		return false, false
	}
	v, ok := r.Source.Read()
	r.Apply(v, ok)
	return true, ok
}

// Reading is a detached copy of a record, safe to use after the store
// lock has been released.
type Reading struct {
	Group   string  `json:"group" yaml:"group"`
	Source  string  `json:"source" yaml:"source"`
	Unit    string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Kind    string  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Current float64 `json:"current" yaml:"current"`
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Faulted bool    `json:"faulted" yaml:"faulted"`
	Samples uint64  `json:"samples" yaml:"samples"`
}

func (r *Record) reading(k Key) Reading {
	out := Reading{
		Group:   k.Group,
		Source:  k.Source,
		Unit:    r.Source.Unit(),
		Current: r.Current,
		Min:     r.Min,
		Max:     r.Max,
		Faulted: r.Faulted,
		Samples: r.Samples,
	}
	if kd, ok := r.Source.(source.Kinded); ok {
		out.Kind = kd.Kind()
	}
	return out
}
