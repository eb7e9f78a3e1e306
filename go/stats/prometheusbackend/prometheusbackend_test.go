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

package prometheusbackend

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitess.io/charconv/go/stats"
)

const namespace = "namespace"

func TestPrometheusCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	be := New(namespace, reg)

	c := stats.NewCounter("", "bytes decoded")
	c.Add(12)
	be.publishPrometheusMetric("BytesDecoded", c)

	expected := `
# HELP namespace_bytes_decoded bytes decoded
# TYPE namespace_bytes_decoded counter
namespace_bytes_decoded 12
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "namespace_bytes_decoded"))
}

func TestPrometheusGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	be := New(namespace, reg)

	g := stats.NewGauge("", "active streams")
	g.Set(3)
	be.publishPrometheusMetric("ActiveStreams", g)

	n, err := testutil.GatherAndCount(reg, "namespace_active_streams")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 1)
	assert.Equal(t, "GAUGE", mfs[0].GetType().String())
	assert.EqualValues(t, 3, mfs[0].GetMetric()[0].GetGauge().GetValue())
}

func TestPrometheusCountersWithSingleLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	be := New(namespace, reg)

	c := stats.NewCountersWithSingleLabel("", "conversion errors", "ErrorState")
	c.Add("MalformedInput", 2)
	c.Add("UnrepresentableCharacter", 1)
	be.publishPrometheusMetric("ConversionErrors", c)

	expected := `
# HELP namespace_conversion_errors conversion errors
# TYPE namespace_conversion_errors counter
namespace_conversion_errors{error_state="MalformedInput"} 2
namespace_conversion_errors{error_state="UnrepresentableCharacter"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "namespace_conversion_errors"))
}

func TestPrometheusCountersWithMultiLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	be := New(namespace, reg)

	c := stats.NewCountersWithMultiLabels("", "bytes converted", []string{"From", "To"})
	c.Add([]string{"UTF-8", "ISO-8859-1"}, 7)
	be.publishPrometheusMetric("BytesConverted", c)

	expected := `
# HELP namespace_bytes_converted bytes converted
# TYPE namespace_bytes_converted counter
namespace_bytes_converted{from="UTF-8",to="ISO-8859-1"} 7
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "namespace_bytes_converted"))
}

func TestBuildPromName(t *testing.T) {
	be := New(namespace, prometheus.NewRegistry())
	assert.Equal(t, "namespace_bytes_in", be.buildPromName("BytesIn"))
	assert.Equal(t, "namespace_bytes_in", be.buildPromName("namespace_BytesIn"))
}

func TestSplitLabels(t *testing.T) {
	assert.Equal(t, []string{"a.b", "c"}, splitLabels(`a\.b.c`))
	assert.Equal(t, []string{"x"}, splitLabels("x"))
	assert.Equal(t, []string{`a\`, "b"}, splitLabels(`a\\.b`))
}
