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

package measurement

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Data keys of a source subtype.
const (
	KeyCurrent = "current"
	KeyMinimum = "minimum"
	KeyMaximum = "maximum"
	KeyUnit    = "unit"
	KeyFaulted = "faulted"
	KeySamples = "samples"
)

// Context keys of a source subtype.
const (
	ContextGroup = "group"
	ContextKind  = "kind"
)

// Type represents the device family a measurement was sampled from.
type Type string

// String returns the string representation of the measurement Type.
func (mt Type) String() string {
	return string(mt)
}

const (
	TypeCPUFreq Type = "CPUFreq"
	TypeHwmon   Type = "Hwmon"
)

// Types lists every device family in document order.
var Types = []Type{
	TypeCPUFreq,
	TypeHwmon,
}

// ParseType returns the Type named s and whether it is one of Types.
func ParseType(s string) (Type, bool) {
	for _, mt := range Types {
		if string(mt) == s {
			return mt, true
		}
	}
	return "", false
}

// Measurement holds the sampled sources of one device family, one Subtype
// per source.
type Measurement struct {
	Type     Type      `json:"type" yaml:"type"`
	Subtypes []Subtype `json:"subtypes,omitempty" yaml:"subtypes,omitempty"`
}

// Subtype holds the statistics of one source. Name is "<group>/<source>",
// Data carries the values and Context the group and kind.
type Subtype struct {
	Name    string             `json:"subtype,omitempty" yaml:"subtype,omitempty"`
	Data    map[string]Reading `json:"data" yaml:"data"`
	Context map[string]string  `json:"context,omitempty" yaml:"context,omitempty"`
}

// rawSubtype is the decoded form of a Subtype before its values are
// wrapped as readings.
type rawSubtype struct {
	Name    string            `json:"subtype" yaml:"subtype"`
	Data    map[string]any    `json:"data" yaml:"data"`
	Context map[string]string `json:"context" yaml:"context"`
}

func (raw rawSubtype) into(st *Subtype) {
	st.Name = raw.Name
	st.Context = raw.Context
	st.Data = make(map[string]Reading, len(raw.Data))
	for k, v := range raw.Data {
		st.Data[k] = ToReading(v)
	}
}

// UnmarshalJSON decodes data values into readings. JSON numbers arrive as
// float64; the getters below convert them back.
func (st *Subtype) UnmarshalJSON(data []byte) error {
	var raw rawSubtype
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw.into(st)
	return nil
}

// UnmarshalYAML decodes data values into readings. Whole numbers arrive
// as int.
func (st *Subtype) UnmarshalYAML(node *yaml.Node) error {
	var raw rawSubtype
	if err := node.Decode(&raw); err != nil {
		return err
	}
	raw.into(st)
	return nil
}

// AllowedScalar is the set of value types a Reading can hold.
type AllowedScalar interface {
	~int | ~int64 | ~uint | ~uint64 | ~float64 | ~bool | ~string
}

// Reading is a single subtype value of any allowed scalar type, so values
// of mixed types can share one map.
type Reading interface {
	isReading()
	Any() any
	String() string

	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Scalar wraps an allowed scalar type.
type Scalar[T AllowedScalar] struct {
	V T
}

func (Scalar[T]) isReading() {}

func (s Scalar[T]) Any() any { return s.V }

func (s Scalar[T]) String() string {
	return fmt.Sprintf("%v", s.V)
}

// MarshalJSON writes the bare value.
func (s Scalar[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.V)
}

// MarshalYAML writes the bare value.
func (s Scalar[T]) MarshalYAML() (any, error) {
	return s.V, nil
}

func (s *Scalar[T]) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &s.V)
}

func (s *Scalar[T]) UnmarshalYAML(node *yaml.Node) error {
	return node.Decode(&s.V)
}

// ToReading wraps a decoded value. Types outside AllowedScalar are kept
// as their string form.
func ToReading(v any) Reading {
	switch val := v.(type) {
	case int:
		return Int(val)
	case int64:
		return Int64(val)
	case uint:
		return Uint(val)
	case uint64:
		return Uint64(val)
	case float64:
		return Float64(val)
	case bool:
		return Bool(val)
	case string:
		return Str(val)
	default:
		return Str(fmt.Sprintf("%v", val))
	}
}

func Int(v int) Reading         { return &Scalar[int]{V: v} }
func Int64(v int64) Reading     { return &Scalar[int64]{V: v} }
func Uint(v uint) Reading       { return &Scalar[uint]{V: v} }
func Uint64(v uint64) Reading   { return &Scalar[uint64]{V: v} }
func Float64(v float64) Reading { return &Scalar[float64]{V: v} }
func Bool(v bool) Reading       { return &Scalar[bool]{V: v} }
func Str(v string) Reading      { return &Scalar[string]{V: v} }

// Validate checks that m names a known device family and that every
// subtype carries data.
func (m *Measurement) Validate() error {
	if m.Type == "" {
		return errors.New("measurement type cannot be empty")
	}
	if _, ok := ParseType(string(m.Type)); !ok {
		return fmt.Errorf("unknown measurement type %q", m.Type)
	}
	if len(m.Subtypes) == 0 {
		return errors.New("measurement must have at least one subtype")
	}
	for i := range m.Subtypes {
		if err := m.Subtypes[i].Validate(); err != nil {
			return fmt.Errorf("subtype[%d] %q: %w", i, m.Subtypes[i].Name, err)
		}
	}
	return nil
}

// Validate checks that st is named and has a current value.
func (st *Subtype) Validate() error {
	if st.Name == "" {
		return errors.New("subtype name cannot be empty")
	}
	if len(st.Data) == 0 {
		return errors.New("subtype data cannot be empty")
	}
	if _, err := st.GetFloat64(KeyCurrent); err != nil {
		return err
	}
	return nil
}

func (st *Subtype) lookup(key string) (any, error) {
	r := st.Data[key]
	if r == nil {
		return nil, fmt.Errorf("key %q not found", key)
	}
	return r.Any(), nil
}

// GetString returns the string stored under key.
func (st *Subtype) GetString(key string) (string, error) {
	v, err := st.lookup(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("key %q is not a string", key)
	}
	return s, nil
}

// GetFloat64 returns the number stored under key, converting integers.
func (st *Subtype) GetFloat64(key string) (float64, error) {
	v, err := st.lookup(key)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("key %q is not a number", key)
}

// GetUint64 returns the non-negative whole number stored under key.
// Integral float64 values, as decoded from JSON, are accepted.
func (st *Subtype) GetUint64(key string) (uint64, error) {
	v, err := st.lookup(key)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case uint64:
		return n, nil
	case uint:
		return uint64(n), nil
	case int:
		if n >= 0 {
			return uint64(n), nil
		}
	case int64:
		if n >= 0 {
			return uint64(n), nil
		}
	case float64:
		if n >= 0 && n < math.MaxUint64 && n == math.Trunc(n) {
			return uint64(n), nil
		}
	}
	return 0, fmt.Errorf("key %q is not an unsigned integer", key)
}

// GetBool returns the bool stored under key.
func (st *Subtype) GetBool(key string) (bool, error) {
	v, err := st.lookup(key)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("key %q is not a bool", key)
	}
	return b, nil
}
