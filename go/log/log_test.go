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

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":  slog.LevelDebug,
		" INFO ": slog.LevelInfo,
		"warn":   slog.LevelWarn,
		"Error":  slog.LevelError,
	} {
		got, err := slogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := slogLevel("trace")
	assert.ErrorContains(t, err, "invalid log-level")
}

func TestSlogHandler(t *testing.T) {
	var buf bytes.Buffer
	h, err := slogHandler(&buf, "json", nil)
	require.NoError(t, err)
	assert.IsType(t, &slog.JSONHandler{}, h)

	h, err = slogHandler(&buf, "logfmt", nil)
	require.NoError(t, err)
	assert.IsType(t, &slog.TextHandler{}, h)

	h, err = slogHandler(&buf, " Pretty", nil)
	require.NoError(t, err)
	logger := slog.New(h)
	logger.Info("converted", "bytes", 3)
	assert.Contains(t, buf.String(), "converted")
	assert.NotContains(t, buf.String(), "\x1b[", "no color outside a terminal")

	_, err = slogHandler(&buf, "xml", nil)
	assert.ErrorContains(t, err, "invalid log-fmt")
}

func TestInitWithoutFormatFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(nil))
	require.NoError(t, Init(fs))
	assert.Nil(t, structured.Load())
	assert.NoError(t, Init(nil))
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	restore := SetLogger(logger)
	defer restore()

	InfoS("converted", "from", "UTF-8", "bytes", 12)
	DebugS("not emitted")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "converted", record["msg"])
	assert.Equal(t, "UTF-8", record["from"])
	assert.EqualValues(t, 12, record["bytes"])

	assert.True(t, Enabled(slog.LevelInfo))
	assert.False(t, Enabled(slog.LevelDebug))
}

func TestGlogLine(t *testing.T) {
	assert.Equal(t, "converted", glogLine("converted", nil))
	assert.Equal(t, "converted from=UTF-8 bytes=12", glogLine("converted", []any{"from", "UTF-8", "bytes", 12}))
	assert.Equal(t, "failed state=MalformedInput", glogLine("failed", []any{slog.String("state", "MalformedInput")}))
}

func TestSetLoggerRestores(t *testing.T) {
	before := structured.Load()
	var buf bytes.Buffer
	restore := SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	WarnS("odd byte", "offset", 7)
	restore()
	assert.Equal(t, before, structured.Load())
	assert.Contains(t, buf.String(), "offset=7")

	SetLogger(nil)()
	assert.Equal(t, before, structured.Load())
}

func TestLogRotateMaxSize(t *testing.T) {
	v := &logRotateMaxSize{}
	require.NoError(t, v.Set("1024"))
	assert.Equal(t, "1024", v.String())
	assert.Equal(t, "uint64", v.Type())
	assert.Error(t, v.Set("-1"))
}
