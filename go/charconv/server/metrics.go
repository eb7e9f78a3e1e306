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

package server

import (
	"net/http"

	"vitess.io/charconv/go/charconv/encoding"
	"vitess.io/charconv/go/stats"
)

var (
	conversions = stats.NewCounter(
		"Conversions",
		"Successful conversion requests")
	requestsInFlight = stats.NewGauge(
		"RequestsInFlight",
		"API requests being served")
	catalogEncodings = stats.NewGaugesWithSingleLabel(
		"CatalogEncodings",
		"Supported encodings, by family",
		"Family")

	conversionBytesIn = stats.NewCountersWithMultiLabels(
		"ConversionBytesIn",
		"Bytes received for conversion, by source and target encoding",
		[]string{"From", "To"})
	conversionBytesOut = stats.NewCountersWithMultiLabels(
		"ConversionBytesOut",
		"Bytes produced by conversion, by source and target encoding",
		[]string{"From", "To"})
	conversionErrors = stats.NewCountersWithSingleLabel(
		"ConversionErrors",
		"Failed requests, by error state",
		"State")
	detections = stats.NewCountersWithSingleLabel(
		"Detections",
		"Detected encodings",
		"Encoding")
)

func init() {
	families := map[string]int64{}
	for _, e := range encoding.All() {
		families[e.Info().Family.String()]++
	}
	for family, n := range families {
		catalogEncodings.Set(family, n)
	}
}

// trackInFlight counts the requests being served by next.
func trackInFlight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestsInFlight.Add(1)
		defer requestsInFlight.Add(-1)
		next.ServeHTTP(w, r)
	})
}
