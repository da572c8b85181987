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
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// Option configures ReadString.
type Option func(*reader)

type reader struct {
	maxSize int
}

// WithMaxSize sets the maximum size (in bytes) of the attribute to be read.
// Default is 4KiB, one sysfs page.
func WithMaxSize(size int) Option {
	return func(r *reader) {
		r.maxSize = size
	}
}

// ReadString reads a small text attribute such as a hwmon "name" or
// "tempN_label" file and returns its first line with surrounding
// whitespace removed. Unlike ReadValue it is meant for discovery, where
// the file is read once and closed.
func ReadString(path string, opts ...Option) (string, error) {
	r := &reader{maxSize: 4096}
	for _, opt := range opts {
		opt(r)
	}

	if path == "" {
		return "", fmt.Errorf("attribute path cannot be empty")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read attribute %q: %w", path, err)
	}

	if len(b) > r.maxSize {
		return "", fmt.Errorf("attribute %q exceeds maximum size of %d bytes", path, r.maxSize)
	}

	if !utf8.Valid(b) {
		return "", fmt.Errorf("content of attribute %q is not valid UTF-8", path)
	}

	line, _, _ := strings.Cut(string(b), "\n")
	return strings.TrimSpace(line), nil
}
