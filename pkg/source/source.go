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

// Package source defines the capability every sampled hardware attribute
// exposes to the sampling engine.
package source

import (
	"errors"
	"io"
)

// Source is one sampled scalar quantity. Implementations keep their
// underlying attribute open for their whole lifetime and re-read it on
// every call to Read.
type Source interface {
	// Read returns the current value converted to Unit. ok is false when
	// the attribute could not be read, decoded or parsed; the failure is
	// logged by the implementation.
	Read() (value float64, ok bool)

	// Unit is the display unit of the values returned by Read, possibly "".
	Unit() string

	// Name identifies the source inside its group.
	Name() string
}

// Kinded is implemented by sources that can report the sensor kind they
// measure, such as "temp" or "fan".
type Kinded interface {
	Kind() string
}

// Group is a named collection of sources discovered from one device.
type Group struct {
	Name    string
	Sources []Source
}

// CloseAll closes every source in groups that holds an open handle.
func CloseAll(groups []Group) error {
	var errs []error
	for _, g := range groups {
		for _, s := range g.Sources {
			if c, ok := s.(io.Closer); ok {
				if err := c.Close(); err != nil {
					errs = append(errs, err)
				}
			}
		}
	}
	return errors.Join(errs...)
}
