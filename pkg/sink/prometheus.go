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

package sink

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/NVIDIA/hwstat/pkg/sampler"
)

var sourceLabels = []string{"group", "source", "kind", "unit"}

var (
	valueDesc = prometheus.NewDesc("hwstat_source_value",
		"Most recent value of a hardware source", sourceLabels, nil)
	minDesc = prometheus.NewDesc("hwstat_source_min",
		"Smallest value seen since startup", sourceLabels, nil)
	maxDesc = prometheus.NewDesc("hwstat_source_max",
		"Largest value seen since startup", sourceLabels, nil)
	faultedDesc = prometheus.NewDesc("hwstat_source_faulted",
		"1 if the source failed and is no longer read", sourceLabels, nil)
	samplesDesc = prometheus.NewDesc("hwstat_source_samples_total",
		"Successful reads of a source", sourceLabels, nil)
	ticksDesc = prometheus.NewDesc("hwstat_store_ticks_total",
		"Completed sampling ticks", nil, nil)
	poisonedDesc = prometheus.NewDesc("hwstat_store_poisoned",
		"1 if a tick failed part way and the store is unusable", nil, nil)
)

// Exporter exposes the store as Prometheus metrics. It takes a snapshot on
// every scrape and needs no notifications.
type Exporter struct {
	store *sampler.Store
}

// NewExporter returns a collector over store.
func NewExporter(store *sampler.Store) *Exporter {
	return &Exporter{store: store}
}

// Describe implements prometheus.Collector.
func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{valueDesc, minDesc, maxDesc, faultedDesc, samplesDesc, ticksDesc, poisonedDesc} {
		ch <- d
	}
}

// Collect implements prometheus.Collector. Sources that are faulted or
// were never read successfully only export their fault and sample series.
func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	snap := e.store.Snapshot()

	ch <- prometheus.MustNewConstMetric(ticksDesc, prometheus.CounterValue, float64(snap.Tick))
	ch <- prometheus.MustNewConstMetric(poisonedDesc, prometheus.GaugeValue, boolValue(snap.Poisoned))

	for _, r := range snap.Readings {
		labels := []string{r.Group, r.Source, r.Kind, r.Unit}

		ch <- prometheus.MustNewConstMetric(faultedDesc, prometheus.GaugeValue, boolValue(r.Faulted), labels...)
		ch <- prometheus.MustNewConstMetric(samplesDesc, prometheus.CounterValue, float64(r.Samples), labels...)

		if r.Faulted || r.Samples == 0 {
			continue
		}
		ch <- prometheus.MustNewConstMetric(valueDesc, prometheus.GaugeValue, r.Current, labels...)
		ch <- prometheus.MustNewConstMetric(minDesc, prometheus.GaugeValue, r.Min, labels...)
		ch <- prometheus.MustNewConstMetric(maxDesc, prometheus.GaugeValue, r.Max, labels...)
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
