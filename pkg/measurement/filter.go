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

import "strings"

// FilterIn returns a copy of m with only the subtypes whose name matches at
// least one of the patterns. An empty pattern list keeps everything.
// Supported wildcard patterns:
//   - "prefix*" matches names starting with "prefix"
//   - "*suffix" matches names ending with "suffix"
//   - "*contains*" matches names containing "contains"
//   - "exact" matches names exactly
func FilterIn(m *Measurement, patterns []string) *Measurement {
	out := &Measurement{Type: m.Type, Subtypes: make([]Subtype, 0, len(m.Subtypes))}
	for _, st := range m.Subtypes {
		if len(patterns) == 0 || MatchAny(st.Name, patterns) {
			out.Subtypes = append(out.Subtypes, st)
		}
	}
	return out
}

// MatchAny reports whether name matches at least one pattern.
func MatchAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if Match(name, p) {
			return true
		}
	}
	return false
}

// Match checks if a name matches a wildcard pattern.
// Supports multiple wildcard segments, e.g., "a*b*c" matches "aXbYc".
func Match(name, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return name == pattern
	}

	segments := strings.Split(pattern, "*")

	pos := 0
	for i, segment := range segments {
		if segment == "" {
			continue
		}

		// first segment is anchored unless the pattern starts with *
		if i == 0 {
			if !strings.HasPrefix(name, segment) {
				return false
			}
			pos = len(segment)
			continue
		}

		// last segment is anchored unless the pattern ends with *
		if i == len(segments)-1 {
			return len(name)-pos >= len(segment) && strings.HasSuffix(name[pos:], segment)
		}

		idx := strings.Index(name[pos:], segment)
		if idx == -1 {
			return false
		}
		pos += idx + len(segment)
	}

	return true
}
