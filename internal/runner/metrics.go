// Copyright 2024 The University of Queensland
// Copyright 2025 Contriboss
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

package runner

import (
	"math/big"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/contriboss/observe-go"
)

const metricsNamespace = "observe"

// Metrics holds the Prometheus metrics of classification runs. Each
// instance owns its registry so runs and tests never share state.
type Metrics struct {
	registry *prometheus.Registry

	// Verdicts counts classified PFAs.
	// Labels: experiment, arity, verdict (invalid, direct, indirect, unobservable, rejected)
	Verdicts *prometheus.CounterVec

	// TierDuration measures the classification time of one tier.
	// Labels: experiment
	TierDuration *prometheus.HistogramVec

	// OracleQueries counts oracle operations issued by the classifier.
	// Labels: experiment, op
	OracleQueries *prometheus.CounterVec

	// ValidConfigurations is the model count of each experiment's universe.
	// Labels: experiment
	ValidConfigurations *prometheus.GaugeVec
}

// NewMetrics creates and registers the run metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "pfa_verdicts_total",
			Help:      "Classified partial feature assignments by verdict",
		}, []string{"experiment", "arity", "verdict"}),
		TierDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "tier_duration_seconds",
			Help:      "Time to classify one arity tier",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 12),
		}, []string{"experiment"}),
		OracleQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "oracle_queries_total",
			Help:      "Boolean oracle operations issued during classification",
		}, []string{"experiment", "op"}),
		ValidConfigurations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "valid_configurations",
			Help:      "Number of valid configurations of the experiment's universe",
		}, []string{"experiment"}),
	}
	m.registry.MustRegister(m.Verdicts, m.TierDuration, m.OracleQueries, m.ValidConfigurations)
	return m
}

// Registry returns the registry the metrics are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveTier records the statistics of a classified tier.
func (m *Metrics) ObserveTier(s observe.TierStats) {
	arity := strconv.Itoa(s.Arity)
	counts := map[string]int{
		observe.Invalid.String():              s.Invalid,
		observe.DirectlyObservable.String():   s.Direct,
		observe.IndirectlyObservable.String(): s.Indirect,
		observe.Unobservable.String():         s.Unobservable,
		"rejected":                            s.Rejected,
	}
	for verdict, n := range counts {
		m.Verdicts.WithLabelValues(s.Experiment, arity, verdict).Add(float64(n))
	}
	m.TierDuration.WithLabelValues(s.Experiment).Observe(s.Elapsed.Seconds())
	if s.ValidConfigurations != nil {
		f, _ := new(big.Float).SetInt(s.ValidConfigurations).Float64()
		m.ValidConfigurations.WithLabelValues(s.Experiment).Set(f)
	}
}

// ObserveQueries adds oracle query counts.
func (m *Metrics) ObserveQueries(experiment string, stats observe.OracleStats) {
	for op, n := range stats.Calls {
		m.OracleQueries.WithLabelValues(experiment, op).Add(float64(n))
	}
}

// WriteTextfile writes the metrics in the Prometheus text format, for the
// node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
