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

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitess.io/charconv/go/vterrors"
)

func run(t *testing.T, fs afero.Fs, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := New(fs)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestConvertFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/in.txt", []byte("caf\xE9 \x80"), 0o644))

	_, err := run(t, fs, "", "convert", "--from", "cp1252", "--to", "UTF-8", "--output", "/out.txt", "/in.txt")
	require.NoError(t, err)

	out, err := afero.ReadFile(fs, "/out.txt")
	require.NoError(t, err)
	assert.Equal(t, "café €", string(out))
}

func TestConvertDetectsSource(t *testing.T) {
	fs := afero.NewMemMapFs()
	in := "\xFF\xFEh\x00i\x00"

	out, err := run(t, fs, in, "convert", "--strip-bom")
	require.NoError(t, err)
	assert.Equal(t, "hi", out)

	out, err = run(t, fs, in, "convert", "--from", "auto")
	require.NoError(t, err)
	assert.Equal(t, "\uFEFFhi", out)

	_, err = run(t, fs, "\x00\x00\x00", "convert")
	require.Error(t, err)
	assert.Equal(t, vterrors.UnknownEncodingName, vterrors.ErrState(err))
}

func TestConvertStripsExplicitBOM(t *testing.T) {
	out, err := run(t, afero.NewMemMapFs(), "\xEF\xBB\xBFabc", "convert", "--from", "UTF-8", "--to", "UTF-16BE", "--strip-bom")
	require.NoError(t, err)
	assert.Equal(t, "\x00a\x00b\x00c", out)
}

func TestConvertPolicy(t *testing.T) {
	fs := afero.NewMemMapFs()
	in := "a\xFFb"

	out, err := run(t, fs, in, "convert", "--from", "UTF-8", "--to", "US-ASCII")
	require.NoError(t, err)
	assert.Equal(t, "a?b", out)

	out, err = run(t, fs, in, "convert", "--from", "UTF-8", "--to", "US-ASCII", "--policy", "skip")
	require.NoError(t, err)
	assert.Equal(t, "ab", out)

	_, err = run(t, fs, in, "convert", "--from", "UTF-8", "--to", "US-ASCII", "--policy", "THROW")
	require.Error(t, err)
	assert.Equal(t, vterrors.MalformedInput, vterrors.ErrState(err))

	_, err = run(t, fs, in, "convert", "--policy", "ignore")
	assert.ErrorContains(t, err, "invalid choice for policy")
}

func TestConvertConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/charconv.yaml", []byte("to: UTF-16LE\npolicy: skip\n"), 0o644))

	out, err := run(t, fs, "a\xFF", "convert", "--config", "/etc/charconv.yaml", "--from", "UTF-8")
	require.NoError(t, err)
	assert.Equal(t, "a\x00", out)

	_, err = run(t, fs, "a", "convert", "--config", "/etc/missing.yaml")
	assert.Error(t, err)
}

func TestConvertEnvironment(t *testing.T) {
	t.Setenv("CHARCONV_TO", "UTF-32BE")

	out, err := run(t, afero.NewMemMapFs(), "A", "convert", "--from", "UTF-8")
	require.NoError(t, err)
	assert.Equal(t, "\x00\x00\x00A", out)
}

func TestConvertErrors(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := run(t, fs, "", "convert", "/missing.txt")
	assert.Error(t, err)

	_, err = run(t, fs, "a", "convert", "--to", "klingon")
	require.Error(t, err)
	assert.Equal(t, vterrors.UnknownEncodingName, vterrors.ErrState(err))

	_, err = run(t, fs, "a", "convert", "a", "b")
	assert.Error(t, err)
}

func TestDetect(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a.txt", []byte("\xFF\xFEh\x00"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/b.txt", []byte("plain"), 0o644))

	out, err := run(t, fs, "", "detect", "/a.txt", "/b.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "/a.txt")
	assert.Contains(t, out, "UTF-16LE")
	assert.Contains(t, out, "/b.txt")
	assert.Contains(t, out, "UTF-8")

	out, err = run(t, fs, "\x00\x00\xFE\xFF", "detect")
	require.NoError(t, err)
	assert.Contains(t, out, "<stdin>")
	assert.Contains(t, out, "UTF-32BE")
}

func TestValidate(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/good.txt", []byte("abc\x00"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/bad.txt", []byte("ab\xFF"), 0o644))

	out, err := run(t, fs, "", "validate", "/good.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "true")

	out, err = run(t, fs, "", "validate", "/good.txt", "/bad.txt")
	require.Error(t, err)
	assert.Equal(t, vterrors.MalformedInput, vterrors.ErrState(err))
	assert.EqualError(t, err, "1 of 2 inputs are not valid UTF-8")
	assert.Contains(t, out, "false")

	_, err = run(t, fs, "h\x00", "validate", "--encoding", "utf-16le")
	assert.NoError(t, err)
}

func TestEncodings(t *testing.T) {
	out, err := run(t, afero.NewMemMapFs(), "", "encodings")
	require.NoError(t, err)
	for _, want := range []string{"UTF-8", "UTF-16LE", "little-endian", "windows-1252", "cp1252", "x-mac-cyrillic"} {
		assert.Contains(t, out, want)
	}
}

func TestServeFlags(t *testing.T) {
	_, err := run(t, afero.NewMemMapFs(), "", "serve", "--max-body-size", "lots")
	assert.Error(t, err)
}
