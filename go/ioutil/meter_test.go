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

package ioutil

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeter(t *testing.T) {
	var (
		calledBytes    int
		calledDuration time.Duration
	)
	tm := meter{
		fs: []func(b int, d time.Duration){func(b int, d time.Duration) {
			calledBytes, calledDuration = b, d
		}},
		bytes:    123,
		duration: time.Second,
	}

	assert.Equal(t, int64(123), tm.Bytes())
	assert.Equal(t, time.Second, tm.Duration())

	b, err := tm.measure(func(p []byte) (int, error) { return 1, nil }, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, b)
	assert.Equal(t, 1, calledBytes)
	assert.Equal(t, time.Second+calledDuration, tm.Duration())
	assert.Equal(t, int64(124), tm.Bytes())
}

func TestMeteredReader(t *testing.T) {
	var calls int
	mr := NewMeteredReader(iotest.OneByteReader(strings.NewReader("abc")), func(int, time.Duration) { calls++ })

	var buf bytes.Buffer
	_, err := buf.ReadFrom(mr)
	require.NoError(t, err)
	assert.Equal(t, "abc", buf.String())
	assert.Equal(t, int64(3), mr.Bytes())
	assert.GreaterOrEqual(t, calls, 4)
}

func TestMeteredReaderError(t *testing.T) {
	boom := errors.New("boom")
	mr := NewMeteredReader(iotest.ErrReader(boom))
	_, err := mr.Read(make([]byte, 4))
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, mr.Bytes())
}

func TestMeteredWriter(t *testing.T) {
	var buf bytes.Buffer
	var written []int
	mw := NewMeteredWriter(&buf, func(b int, _ time.Duration) { written = append(written, b) })

	_, err := mw.Write([]byte("hello "))
	require.NoError(t, err)
	_, err = mw.Write([]byte("world"))
	require.NoError(t, err)

	assert.Equal(t, "hello world", buf.String())
	assert.Equal(t, int64(11), mw.Bytes())
	assert.Equal(t, []int{6, 5}, written)
	assert.GreaterOrEqual(t, mw.Duration(), time.Duration(0))
}
