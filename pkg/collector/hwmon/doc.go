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

// Package hwmon discovers and reads kernel hardware-monitor sensors.
//
// Each /sys/class/hwmon/hwmon<N> directory becomes one group named after
// its "name" attribute. Every <kind><n>_input attribute in it becomes a
// Sensor named after the matching <kind><n>_label, or "<kind><n>" when no
// label exists. Raw values are scaled per kind:
//
//	curr      mA  -> A
//	fan       RPM
//	temp      m°C -> °C
//	in        mV  -> V
//	power     µW  -> W
//	energy    µJ  -> J
//	humidity  m%  -> %
//	freq      Hz
//
// Kinds outside this table are reported unscaled with an empty unit.
package hwmon
