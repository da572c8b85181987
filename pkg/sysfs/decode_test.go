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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hwstat/pkg/defaults"
	"github.com/NVIDIA/hwstat/pkg/errors"
)

// failingReaderAt always fails, standing in for an attribute whose
// device went away.
type failingReaderAt struct{ err error }

func (f failingReaderAt) ReadAt(_ []byte, _ int64) (int, error) { return 0, f.err }

// countingReaderAt serves fixed content and records the requested sizes.
type countingReaderAt struct {
	data  string
	calls []int
}

func (c *countingReaderAt) ReadAt(p []byte, off int64) (int, error) {
	c.calls = append(c.calls, len(p))
	return strings.NewReader(c.data).ReadAt(p, off)
}

func TestDecodeInt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int64
	}{
		{"millidegrees", "45000\n", 45000},
		{"no newline", "1200", 1200},
		{"nul padding", "42\n\x00\x00\x00", 42},
		{"negative", "-5000\n", -5000},
		{"zero", "0\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode[int64]([]byte(tt.raw), "/sys/test")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeConvertedSample(t *testing.T) {
	v, err := Decode[int64]([]byte("45000\n"), "/sys/class/hwmon/hwmon0/temp1_input")
	require.NoError(t, err)
	assert.InDelta(t, 45.0, float64(v)/1000, 1e-9)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		code errors.ErrorCode
		key  string
	}{
		{"invalid utf8", []byte{0xff, 0xfe, 0xfd, '\n'}, errors.ErrCodeEncoding, "bytes"},
		{"letters", []byte("abc\n"), errors.ErrCodeFormat, "text"},
		{"empty", []byte{}, errors.ErrCodeFormat, "text"},
		{"float for int", []byte("1.5\n"), errors.ErrCodeFormat, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode[int64](tt.raw, "/sys/test/attr")
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))

			var se *errors.StructuredError
			require.True(t, stderrors.As(err, &se))
			assert.Equal(t, "/sys/test/attr", se.Context["path"])
			assert.Contains(t, se.Context, tt.key)
		})
	}
}

func TestDecodeTypes(t *testing.T) {
	t.Run("int32 overflow", func(t *testing.T) {
		_, err := Decode[int32]([]byte("4294967296\n"), "p")
		assert.Equal(t, errors.ErrCodeFormat, errors.CodeOf(err))
	})

	t.Run("uint64 rejects negative", func(t *testing.T) {
		_, err := Decode[uint64]([]byte("-1\n"), "p")
		assert.Equal(t, errors.ErrCodeFormat, errors.CodeOf(err))
	})

	t.Run("float64", func(t *testing.T) {
		v, err := Decode[float64]([]byte("3.25\n"), "p")
		require.NoError(t, err)
		assert.Equal(t, 3.25, v)
	})

	t.Run("float64 rejects NaN", func(t *testing.T) {
		_, err := Decode[float64]([]byte("NaN\n"), "p")
		assert.Equal(t, errors.ErrCodeFormat, errors.CodeOf(err))
	})
}

func TestReadValueIOError(t *testing.T) {
	cause := stderrors.New("no such device")
	_, err := ReadValue[int64](failingReaderAt{err: cause}, "/sys/gone")

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeIO, errors.CodeOf(err))
	assert.ErrorIs(t, err, cause)
}

func TestReadValueSingleBoundedRead(t *testing.T) {
	r := &countingReaderAt{data: "2400000\n"}

	v, err := ReadValue[int64](r, "scaling_cur_freq")
	require.NoError(t, err)
	assert.Equal(t, int64(2400000), v)
	assert.Equal(t, []int{defaults.ReadBufferSize + 1}, r.calls)
}

func TestReadValueLength(t *testing.T) {
	tests := []struct {
		name string
		data string
		want uint64
		code errors.ErrorCode
	}{
		{"energy counter", "12345678901234567\n", 12345678901234567, ""},
		{"max uint64", "18446744073709551615\n", 18446744073709551615, ""},
		{"full buffer overflows uint64", strings.Repeat("1", defaults.ReadBufferSize-1) + "\n", 0, errors.ErrCodeFormat},
		{"one byte over", strings.Repeat("1", defaults.ReadBufferSize) + "\n", 0, errors.ErrCodeFormat},
		{"far over", strings.Repeat("9", 64) + "\n", 0, errors.ErrCodeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadValue[uint64](&countingReaderAt{data: tt.data}, "/sys/test/energy1_input")
			if tt.code != "" {
				require.Error(t, err)
				assert.Equal(t, tt.code, errors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadValueRereadsFromStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "temp1_input")
	require.NoError(t, os.WriteFile(path, []byte("30000\n"), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	first, err := ReadValue[int64](f, path)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), first)

	require.NoError(t, os.WriteFile(path, []byte("31000\n"), 0o644))

	second, err := ReadValue[int64](f, path)
	require.NoError(t, err)
	assert.Equal(t, int64(31000), second)
}
