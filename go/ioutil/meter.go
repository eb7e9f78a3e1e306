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

/*
MeteredReader and MeteredWriter are time-and-byte-tracking wrappers around
Reader and Writer.
*/

package ioutil

import (
	"io"
	"time"
)

// MeteredReader tracks how much time is spent and bytes are read in Read
// calls.
type MeteredReader interface {
	io.Reader
	// Bytes reports the total number of bytes read in Read calls.
	Bytes() int64
	// Duration reports the total duration of time spent on Read calls.
	Duration() time.Duration
}

// MeteredWriter tracks how much time is spent and bytes are written in
// Write calls.
type MeteredWriter interface {
	io.Writer
	// Bytes reports the total number of bytes written in Write calls.
	Bytes() int64
	// Duration reports the total duration of time spent on Write calls.
	Duration() time.Duration
}

type meter struct {
	fs       []func(b int, d time.Duration)
	bytes    int64
	duration time.Duration
}

func (m *meter) Bytes() int64 {
	return m.bytes
}

func (m *meter) Duration() time.Duration {
	return m.duration
}

// measure calls f, adds its byte count and duration to the totals and
// passes them to the callbacks.
func (m *meter) measure(f func(p []byte) (int, error), p []byte) (int, error) {
	start := time.Now()
	b, err := f(p)
	d := time.Since(start)
	m.bytes += int64(b)
	m.duration += d
	for _, fn := range m.fs {
		fn(b, d)
	}
	return b, err
}

type meteredReader struct {
	r io.Reader
	*meter
}

// NewMeteredReader creates a MeteredReader which tracks the amount of time
// spent and bytes read in Read calls to r. Optional callbacks are called
// with the time spent and bytes read in each Read call.
func NewMeteredReader(r io.Reader, fns ...func(int, time.Duration)) MeteredReader {
	return &meteredReader{r: r, meter: &meter{fs: fns}}
}

func (mr *meteredReader) Read(p []byte) (int, error) {
	return mr.measure(mr.r.Read, p)
}

type meteredWriter struct {
	w io.Writer
	*meter
}

// NewMeteredWriter creates a MeteredWriter which tracks the amount of time
// spent and bytes written in Write calls to w. Optional callbacks are
// called with the time spent and bytes written in each Write call.
func NewMeteredWriter(w io.Writer, fns ...func(int, time.Duration)) MeteredWriter {
	return &meteredWriter{w: w, meter: &meter{fs: fns}}
}

func (mw *meteredWriter) Write(p []byte) (int, error) {
	return mw.measure(mw.w.Write, p)
}
