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

package sampler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Tick metrics
	ticksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hwstat_sampler_ticks_total",
			Help: "Total number of sampling ticks by result",
		},
		[]string{"result"},
	)

	tickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hwstat_sampler_tick_duration_seconds",
			Help:    "Time spent reading every source in one tick",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	// Source metrics
	sourceReadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hwstat_sampler_source_reads_total",
			Help: "Total number of source reads by result",
		},
		[]string{"result"},
	)

	sourcesFaulted = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hwstat_sampler_sources_faulted",
			Help: "Number of sources latched as faulted",
		},
	)

	notificationsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hwstat_sampler_notifications_sent_total",
			Help: "Total number of tick notifications delivered to the receiver",
		},
	)
)
