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
	"iter"

	"github.com/NVIDIA/hwstat/pkg/errors"
	"github.com/NVIDIA/hwstat/pkg/source"
)

// Key identifies a record by its group and source names.
type Key struct {
	Group  string
	Source string
}

func (k Key) String() string {
	return k.Group + "/" + k.Source
}

var (
	// ErrDuplicateKey is returned when a (group, source) pair is inserted twice.
	ErrDuplicateKey = errors.New(errors.ErrCodeInvalidRequest, "duplicate catalogue key")

	// ErrSealed is returned when inserting into a catalogue owned by a Store.
	ErrSealed = errors.New(errors.ErrCodeInvalidRequest, "catalogue is sealed")
)

// Catalogue is the ordered, unique set of records the engine samples.
// Iteration follows insertion order, which is discovery order.
type Catalogue struct {
	order   []Key
	records map[Key]*Record
	sealed  bool
}

// NewCatalogue returns an empty catalogue.
func NewCatalogue() *Catalogue {
	return &Catalogue{records: make(map[Key]*Record)}
}

// FromGroups builds a catalogue holding one record per source, in group
// order and then source order.
func FromGroups(groups []source.Group) (*Catalogue, error) {
	c := NewCatalogue()
	for _, g := range groups {
		for _, s := range g.Sources {
			if err := c.Insert(g.Name, s); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// Insert adds a fresh record for src under group.
func (c *Catalogue) Insert(group string, src source.Source) error {
	if c.sealed {
		return ErrSealed
	}
	k := Key{Group: group, Source: src.Name()}
	if _, ok := c.records[k]; ok {
		return fmt.Errorf("%s: %w", k, ErrDuplicateKey)
	}
	c.order = append(c.order, k)
	c.records[k] = NewRecord(src)
	return nil
}

// Len returns the number of records.
func (c *Catalogue) Len() int {
	return len(c.order)
}

// Keys returns a copy of the keys in iteration order.
func (c *Catalogue) Keys() []Key {
	out := make([]Key, len(c.order))
	copy(out, c.order)
	return out
}

// Get returns the record stored under k.
func (c *Catalogue) Get(k Key) (*Record, bool) {
	r, ok := c.records[k]
	return r, ok
}

// All iterates records in catalogue order.
func (c *Catalogue) All() iter.Seq2[Key, *Record] {
	return func(yield func(Key, *Record) bool) {
		for _, k := range c.order {
			if !yield(k, c.records[k]) {
				return
			}
		}
	}
}
