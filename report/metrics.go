// Copyright 2026 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import (
	"time"

	"github.com/juju/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	LabelStrategy = "strategy"
	LabelKind     = "kind"
)

// Metrics exports benchmark results in the Prometheus text format, for
// example to the textfile collector of node_exporter.
type Metrics struct {
	registry *prometheus.Registry

	LoadSeconds    prometheus.Gauge
	Rows           prometheus.Gauge
	NsPerOpVec     *prometheus.GaugeVec
	BytesPerOpVec  *prometheus.GaugeVec
	AllocsPerOpVec *prometheus.GaugeVec
	MeanVec        *prometheus.GaugeVec
	FailedVec      *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	labels := []string{LabelStrategy, LabelKind}
	return &Metrics{
		registry: registry,
		LoadSeconds: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "avgnumbers",
			Subsystem: "data",
			Name:      "load_seconds",
		}),
		Rows: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "avgnumbers",
			Subsystem: "data",
			Name:      "rows",
		}),
		NsPerOpVec: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "avgnumbers",
			Subsystem: "bench",
			Name:      "ns_per_op",
		}, labels),
		BytesPerOpVec: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "avgnumbers",
			Subsystem: "bench",
			Name:      "bytes_per_op",
		}, labels),
		AllocsPerOpVec: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "avgnumbers",
			Subsystem: "bench",
			Name:      "allocs_per_op",
		}, labels),
		MeanVec: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "avgnumbers",
			Subsystem: "bench",
			Name:      "mean",
		}, labels),
		FailedVec: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "avgnumbers",
			Subsystem: "bench",
			Name:      "failed",
		}, labels),
	}
}

func (m *Metrics) ObserveLoad(elapsed time.Duration, rows int) {
	m.LoadSeconds.Set(elapsed.Seconds())
	m.Rows.Set(float64(rows))
}

func (m *Metrics) Observe(results []Result) {
	for _, r := range results {
		if r.Err != nil {
			m.FailedVec.WithLabelValues(r.Name, r.Kind).Set(1)
			continue
		}
		m.FailedVec.WithLabelValues(r.Name, r.Kind).Set(0)
		m.NsPerOpVec.WithLabelValues(r.Name, r.Kind).Set(float64(r.NsPerOp))
		m.BytesPerOpVec.WithLabelValues(r.Name, r.Kind).Set(float64(r.BytesPerOp))
		m.AllocsPerOpVec.WithLabelValues(r.Name, r.Kind).Set(float64(r.AllocsPerOp))
		m.MeanVec.WithLabelValues(r.Name, r.Kind).Set(r.Mean)
	}
}

// WriteFile atomically writes all metrics to path.
func (m *Metrics) WriteFile(path string) error {
	return errors.Trace(prometheus.WriteToTextfile(path, m.registry))
}
