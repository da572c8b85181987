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

// Package measurement provides the export model for sampled telemetry.
//
// # Core Types
//
// The package defines a hierarchical structure for measurements:
//   - Type: the device family (CPUFreq, Hwmon)
//   - Measurement: a Type and one Subtype per source
//   - Subtype: a source's statistics keyed by KeyCurrent, KeyMinimum,
//     KeyMaximum, KeyUnit, KeyFaulted and KeySamples, plus context
//   - Reading: interface for type-safe scalar values
//
// # Creating Measurements
//
//	m := NewMeasurement(TypeHwmon).
//	    WithSubtypeBuilder(
//	        NewSubtypeBuilder("coretemp/Package id 0").
//	            SetFloat64(KeyCurrent, 45).
//	            SetString(KeyUnit, "°C").
//	            WithContext(ContextGroup, "coretemp"),
//	    ).
//	    Build()
//
// # Accessing Data
//
//	current, err := m.Subtypes[0].GetFloat64(KeyCurrent)
//	samples, err := m.Subtypes[0].GetUint64(KeySamples)
//
// The getters accept every numeric form a decoded document can hold, so
// documents read back from JSON or YAML behave like freshly built ones.
//
// # Filtering
//
// Subtype names are "<group>/<source>", so sources can be selected with
// wildcard patterns:
//
//	cores := FilterIn(m, []string{"coretemp/Core*"})
//
// # Serialization
//
// Measurements support JSON and YAML marshaling/unmarshaling. The Reading
// interface is marshaled to its underlying value, avoiding wrapper
// structures in the output.
package measurement
