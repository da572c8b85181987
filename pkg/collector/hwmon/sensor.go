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
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/NVIDIA/hwstat/pkg/errors"
	"github.com/NVIDIA/hwstat/pkg/sysfs"
)

var inputPattern = regexp.MustCompile(`^([a-z]+)(\d+)_input$`)

// Sensor is one hwmon <kind><n>_input attribute held open for re-reading.
type Sensor struct {
	file *os.File
	path string
	id   string
	name string
	kind Kind
}

// ParseInputName splits an attribute file name such as "temp1_input" into
// its kind and index. ok is false for files that are not sensor inputs.
func ParseInputName(base string) (kind Kind, index int, ok bool) {
	m := inputPattern.FindStringSubmatch(base)
	if m == nil {
		return "", 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return ParseKind(m[1]), n, true
}

// OpenSensor opens the input attribute at path. The sensor name is taken
// from the sibling <prefix><n>_label attribute when it exists and
// defaults to "<prefix><n>" otherwise.
func OpenSensor(path string) (*Sensor, error) {
	base := filepath.Base(path)
	m := inputPattern.FindStringSubmatch(base)
	if m == nil {
		return nil, errors.NewWithContext(errors.ErrCodeDiscovery,
			fmt.Sprintf("%q is not a hwmon input attribute", base),
			map[string]any{"path": path})
	}
	kind := ParseKind(m[1])
	id := m[1] + m[2]
	if !kind.Known() {
		slog.Debug("unknown hwmon sensor kind, reporting raw values", "path", path, "kind", kind)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeDiscovery,
			"failed to open hwmon sensor", err, map[string]any{"path": path})
	}

	name := id
	labelPath := filepath.Join(filepath.Dir(path), id+"_label")
	label, err := sysfs.ReadString(labelPath)
	switch {
	case err == nil && label != "":
		name = label
	case err != nil && !stderrors.Is(err, os.ErrNotExist):
		slog.Debug("unreadable sensor label, using attribute id",
			"path", labelPath, "error", err)
	}

	return &Sensor{
		file: f,
		path: path,
		id:   id,
		name: name,
		kind: kind,
	}, nil
}

// Read implements source.Source.
func (s *Sensor) Read() (float64, bool) {
	raw, err := sysfs.ReadValue[int64](s.file, s.path)
	if err != nil {
		slog.Warn("sensor read failed",
			append([]any{"source", s.name, "kind", s.kind.Label()}, errors.LogAttrs(err)...)...)
		return 0, false
	}
	return s.kind.Convert(raw), true
}

// Unit implements source.Source.
func (s *Sensor) Unit() string { return s.kind.Unit() }

// Name implements source.Source.
func (s *Sensor) Name() string { return s.name }

// Kind implements source.Kinded.
func (s *Sensor) Kind() string { return string(s.kind) }

// ID returns the attribute id, e.g. "temp1".
func (s *Sensor) ID() string { return s.id }

// Path returns the input attribute path.
func (s *Sensor) Path() string { return s.path }

// Close releases the attribute handle.
func (s *Sensor) Close() error {
	return s.file.Close()
}
