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

package collector

import (
	"context"

	"github.com/NVIDIA/hwstat/pkg/collector/cpufreq"
	"github.com/NVIDIA/hwstat/pkg/collector/hwmon"
	"github.com/NVIDIA/hwstat/pkg/defaults"
	"github.com/NVIDIA/hwstat/pkg/source"
)

// Collector discovers the sources of one device family.
type Collector interface {
	Collect(ctx context.Context) ([]source.Group, error)
}

// Factory creates collectors for every supported device family.
type Factory interface {
	CreateCPUFreqCollector() Collector
	CreateHwmonCollector() Collector
}

// Option is a functional option for configuring DefaultFactory instances.
type Option func(*DefaultFactory)

// WithSysRoot sets the sysfs mount point collectors read from.
func WithSysRoot(root string) Option {
	return func(f *DefaultFactory) {
		f.SysRoot = root
	}
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	SysRoot string
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		SysRoot: defaults.SysRoot,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateCPUFreqCollector creates a cpufreq collector.
func (f *DefaultFactory) CreateCPUFreqCollector() Collector {
	return &cpufreq.Collector{SysRoot: f.SysRoot}
}

// CreateHwmonCollector creates a hwmon collector.
func (f *DefaultFactory) CreateHwmonCollector() Collector {
	return &hwmon.Collector{SysRoot: f.SysRoot}
}
