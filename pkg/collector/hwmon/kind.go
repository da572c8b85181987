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

package hwmon

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind is the measurement prefix of a hwmon attribute, e.g. "temp" in
// temp1_input.
type Kind string

const (
	KindCurrent   Kind = "curr"
	KindFan       Kind = "fan"
	KindTemp      Kind = "temp"
	KindVoltage   Kind = "in"
	KindPower     Kind = "power"
	KindEnergy    Kind = "energy"
	KindHumidity  Kind = "humidity"
	KindFrequency Kind = "freq"
)

type kindInfo struct {
	unit    string
	divisor float64
	label   string
}

// Raw hwmon values are integers in milli- or micro-units.
var kinds = map[Kind]kindInfo{
	KindCurrent:   {unit: "A", divisor: 1000, label: "current"},
	KindFan:       {unit: "RPM", divisor: 1, label: "fan speed"},
	KindTemp:      {unit: "°C", divisor: 1000, label: "temperature"},
	KindVoltage:   {unit: "V", divisor: 1000, label: "voltage"},
	KindPower:     {unit: "W", divisor: 1_000_000, label: "power"},
	KindEnergy:    {unit: "J", divisor: 1_000_000, label: "energy"},
	KindHumidity:  {unit: "%", divisor: 1000, label: "humidity"},
	KindFrequency: {unit: "Hz", divisor: 1, label: "frequency"},
}

// ParseKind maps an attribute prefix to a Kind. "cur" is accepted as an
// alias of "curr".
func ParseKind(prefix string) Kind {
	if prefix == "cur" {
		return KindCurrent
	}
	return Kind(prefix)
}

// Known reports whether k has a defined unit and scale.
func (k Kind) Known() bool {
	_, ok := kinds[k]
	return ok
}

// Unit returns the display unit, or "" for unknown kinds.
func (k Kind) Unit() string {
	return kinds[k].unit
}

// Convert scales a raw attribute value into Unit. Unknown kinds are
// returned unscaled.
func (k Kind) Convert(raw int64) float64 {
	info, ok := kinds[k]
	if !ok {
		return float64(raw)
	}
	return float64(raw) / info.divisor
}

// Label returns a human readable, title-cased description of the kind.
func (k Kind) Label() string {
	label := string(k)
	if info, ok := kinds[k]; ok {
		label = info.label
	}
	return cases.Title(language.English).String(label)
}
