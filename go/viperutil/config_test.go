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

package viperutil

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settings struct {
	to       string
	stripBOM bool
	limit    int
	names    []string
}

func newFlagSet(s *settings) *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringVar(&s.to, "to", "UTF-8", "")
	fs.BoolVar(&s.stripBOM, "strip-bom", false, "")
	fs.IntVar(&s.limit, "limit", 10, "")
	fs.StringSliceVar(&s.names, "names", nil, "")
	return fs
}

func TestLoadConfigFile(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/etc/charconv.yaml", []byte("to: UTF-16LE\nstrip-bom: true\nnames: [a, b]\n"), 0o644))

	v, err := Load(Options{ConfigFile: "/etc/charconv.yaml", Fs: mem})
	require.NoError(t, err)

	var s settings
	fs := newFlagSet(&s)
	require.NoError(t, fs.Parse([]string{"--limit", "3"}))
	require.NoError(t, Apply(v, fs))

	assert.Equal(t, settings{to: "UTF-16LE", stripBOM: true, limit: 3, names: []string{"a", "b"}}, s)
}

func TestCommandLineWins(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/c.json", []byte(`{"to": "UTF-16LE", "limit": 7}`), 0o644))

	v, err := Load(Options{ConfigFile: "/c.json", Fs: mem})
	require.NoError(t, err)

	var s settings
	fs := newFlagSet(&s)
	require.NoError(t, fs.Parse([]string{"--to", "KOI8-R"}))
	require.NoError(t, Apply(v, fs))
	assert.Equal(t, "KOI8-R", s.to)
	assert.Equal(t, 7, s.limit)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("TEST_STRIP_BOM", "true")
	t.Setenv("TEST_TO", "UTF-32BE")

	v, err := Load(Options{EnvPrefix: "test"})
	require.NoError(t, err)

	var s settings
	fs := newFlagSet(&s)
	require.NoError(t, fs.Parse(nil))
	require.NoError(t, Apply(v, fs))
	assert.True(t, s.stripBOM)
	assert.Equal(t, "UTF-32BE", s.to)
	assert.Equal(t, 10, s.limit)
}

func TestLoadErrors(t *testing.T) {
	mem := afero.NewMemMapFs()

	_, err := Load(Options{ConfigFile: "/etc/charconv.ini2", Fs: mem})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(Options{ConfigFile: "/missing.yaml", Fs: mem})
	assert.Error(t, err)
}

func TestApplyInvalidValue(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/c.toml", []byte("limit = \"lots\"\n"), 0o644))

	v, err := Load(Options{ConfigFile: "/c.toml", Fs: mem})
	require.NoError(t, err)

	var s settings
	fs := newFlagSet(&s)
	require.NoError(t, fs.Parse(nil))
	err = Apply(v, fs)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.ErrorContains(t, err, "limit")
}
