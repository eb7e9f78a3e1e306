/*
Copyright 2026 The Vitess Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package prometheusbackend exports stats variables to Prometheus.
package prometheusbackend

import (
	"expvar"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"vitess.io/charconv/go/log"
	"vitess.io/charconv/go/stats"
)

// PromBackend exports stats variables as Prometheus collectors.
type PromBackend struct {
	namespace  string
	registerer prometheus.Registerer
}

// Init initializes the Prometheus backend with the given namespace and
// registers every published stats variable with the default registry.
func Init(namespace string) {
	be := New(namespace, prometheus.DefaultRegisterer)
	stats.Register(be.publishPrometheusMetric)
}

// New returns a backend that registers its collectors with reg.
func New(namespace string, reg prometheus.Registerer) *PromBackend {
	return &PromBackend{namespace: namespace, registerer: reg}
}

// publishPrometheusMetric is used to publish the metric to Prometheus.
func (be *PromBackend) publishPrometheusMetric(name string, v expvar.Var) {
	switch st := v.(type) {
	case *stats.Gauge:
		be.newMetric(st, name, prometheus.GaugeValue, func() float64 { return float64(st.Get()) })
	case *stats.Counter:
		be.newMetric(st, name, prometheus.CounterValue, func() float64 { return float64(st.Get()) })
	case *stats.GaugesWithSingleLabel:
		be.newCountersWithSingleLabel(&st.CountersWithSingleLabel, name, st.Label(), prometheus.GaugeValue)
	case *stats.CountersWithSingleLabel:
		be.newCountersWithSingleLabel(st, name, st.Label(), prometheus.CounterValue)
	case *stats.CountersWithMultiLabels:
		be.newCountersWithMultiLabels(st, name)
	default:
		log.V(1).Infof("Not exporting to Prometheus an unsupported metric type of %T: %s", st, name)
	}
}

func (be *PromBackend) newCountersWithSingleLabel(c *stats.CountersWithSingleLabel, name string, labelName string, vt prometheus.ValueType) {
	collector := &countersWithSingleLabelCollector{
		counters: c,
		desc: prometheus.NewDesc(
			be.buildPromName(name),
			c.Help(),
			[]string{normalizeMetric(labelName)},
			nil),
		vt: vt}

	be.register(name, collector)
}

func (be *PromBackend) newCountersWithMultiLabels(cml *stats.CountersWithMultiLabels, name string) {
	c := &metricWithMultiLabelsCollector{
		cml: cml,
		desc: prometheus.NewDesc(
			be.buildPromName(name),
			cml.Help(),
			labelsToSnake(cml.Labels()),
			nil),
	}

	be.register(name, c)
}

func (be *PromBackend) newMetric(v stats.Variable, name string, vt prometheus.ValueType, f func() float64) {
	collector := &metricFuncCollector{
		f: f,
		desc: prometheus.NewDesc(
			be.buildPromName(name),
			v.Help(),
			nil,
			nil),
		vt: vt}

	be.register(name, collector)
}

func (be *PromBackend) register(name string, c prometheus.Collector) {
	if err := be.registerer.Register(c); err != nil {
		log.Warningf("prometheusbackend: cannot register %s: %v", name, err)
	}
}

// buildPromName specifies the namespace as a prefix to the metric name
func (be *PromBackend) buildPromName(name string) string {
	s := strings.TrimPrefix(normalizeMetric(name), be.namespace+"_")
	return prometheus.BuildFQName("", be.namespace, s)
}

func labelsToSnake(labels []string) []string {
	output := make([]string, len(labels))
	for i, l := range labels {
		output[i] = normalizeMetric(l)
	}
	return output
}

// normalizeMetric produces a compliant name by applying
// a camel case to snake case converter.
func normalizeMetric(name string) string {
	return stats.GetSnakeName(name)
}
