// Copyright (c) 2025, Unitscope Authors.  All rights reserved.
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

package report

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Report capture metrics
	reportCaptureDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "unitscope_report_capture_duration_seconds",
			Help:    "Time taken to capture a complete user report",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	reportCaptureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unitscope_report_capture_total",
			Help: "Total number of report capture attempts",
		},
		[]string{"status"}, // success or error
	)

	reportProbeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "unitscope_report_probe_duration_seconds",
			Help:    "Time taken by individual probes",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"probe"}, // directories, services, sockets, timers, manager, sessions, cgroup
	)

	reportUnitCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "unitscope_report_units",
			Help: "Number of unit records in the last captured report",
		},
	)
)
