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

package sysfs

import (
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/NVIDIA/hwstat/pkg/defaults"
	"github.com/NVIDIA/hwstat/pkg/errors"
)

// padding is stripped from both ends of an attribute before parsing.
const padding = "\x00\n"

// Value is the set of numeric types an attribute can be decoded into.
type Value interface {
	int32 | int64 | uint64 | float64
}

// ReadValue performs one bounded read from offset 0 of r and decodes the
// result as T. Keeping the file open and re-reading at offset 0 is how
// sysfs attributes are refreshed without reopening them every tick.
//
// An attribute longer than defaults.ReadBufferSize is rejected with
// ErrCodeFormat rather than parsed from its first bytes.
//
// Failures are *errors.StructuredError values with code ErrCodeIO,
// ErrCodeEncoding or ErrCodeFormat; path is recorded in their context.
func ReadValue[T Value](r io.ReaderAt, path string) (T, error) {
	var zero T
	// one spare byte tells a full attribute from a truncated one
	buf := make([]byte, defaults.ReadBufferSize+1)

	n, err := r.ReadAt(buf, 0)
	if err != nil && !stderrors.Is(err, io.EOF) {
		return zero, errors.WrapWithContext(errors.ErrCodeIO,
			fmt.Sprintf("couldn't read %q", path), err,
			map[string]any{"path": path})
	}
	if n > defaults.ReadBufferSize {
		return zero, errors.NewWithContext(errors.ErrCodeFormat,
			fmt.Sprintf("output longer than %d bytes", defaults.ReadBufferSize),
			map[string]any{"path": path, "text": string(buf[:defaults.ReadBufferSize])})
	}

	return Decode[T](buf[:n], path)
}

// Decode validates raw as UTF-8, trims NUL and newline padding and parses
// the remainder as T.
func Decode[T Value](raw []byte, path string) (T, error) {
	var zero T

	if !utf8.Valid(raw) {
		return zero, errors.NewWithContext(errors.ErrCodeEncoding,
			fmt.Sprintf("non-utf8 output %q", raw),
			map[string]any{"path": path, "bytes": fmt.Sprintf("%q", raw)})
	}

	text := strings.Trim(string(raw), padding)
	v, err := parse[T](text)
	if err != nil {
		return zero, errors.WrapWithContext(errors.ErrCodeFormat,
			fmt.Sprintf("unexpected output %q", text), err,
			map[string]any{"path": path, "text": text})
	}
	return v, nil
}

func parse[T Value](text string) (T, error) {
	var out T
	switch p := any(&out).(type) {
	case *int32:
		v, err := strconv.ParseInt(text, 10, 32)
		*p = int32(v)
		return out, err
	case *int64:
		v, err := strconv.ParseInt(text, 10, 64)
		*p = v
		return out, err
	case *uint64:
		v, err := strconv.ParseUint(text, 10, 64)
		*p = v
		return out, err
	case *float64:
		v, err := strconv.ParseFloat(text, 64)
		if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
			return out, fmt.Errorf("non-finite value %v", v)
		}
		*p = v
		return out, err
	}
	return out, fmt.Errorf("unsupported value type %T", out)
}
