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

// Package sysfs reads kernel-exported attributes.
//
// # Fixed-width decode
//
// ReadValue is the per-tick hot path used by every source adapter. It
// performs exactly one read of at most defaults.ReadBufferSize bytes at
// offset 0 of an already open attribute, then:
//
//  1. rejects output that does not fit the buffer (ErrCodeFormat)
//  2. validates the bytes as UTF-8 (ErrCodeEncoding on failure)
//  3. trims NUL and newline padding
//  4. parses the text as the requested numeric type (ErrCodeFormat on failure)
//
// A failed read is reported as ErrCodeIO. Every failure carries the attribute
// path in the error context so the caller can log a complete diagnostic:
//
//	f, _ := os.Open("/sys/class/hwmon/hwmon0/temp1_input")
//	v, err := sysfs.ReadValue[int64](f, f.Name())
//	if err != nil {
//	    slog.Warn("source read failed", errors.LogAttrs(err)...)
//	}
//
// # Discovery helpers
//
// ReadString reads a small text attribute once (device names, sensor
// labels) and is only used while building the catalogue.
package sysfs
