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

// Package viperutil fills pflag flag sets from a config file and the
// environment, using viper.
//
// Command line flags always win. A flag that was not set on the command
// line takes its value from the environment (PREFIX_FLAG_NAME, with dashes
// turned into underscores) and then from the config file.
package viperutil

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Options describes where configuration comes from.
type Options struct {
	// EnvPrefix is prepended to environment variable names.
	EnvPrefix string
	// ConfigFile is read if set. Its extension selects the format.
	ConfigFile string
	// Fs is the filesystem ConfigFile is read from. Defaults to the OS
	// filesystem.
	Fs afero.Fs
}

// Load returns a viper bound to the environment and, if one is named, the
// config file.
func Load(opts Options) (*viper.Viper, error) {
	v := viper.New()
	if opts.Fs != nil {
		v.SetFs(opts.Fs)
	}
	if opts.EnvPrefix != "" {
		v.SetEnvPrefix(opts.EnvPrefix)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile == "" {
		return v, nil
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.ConfigFile)), ".")
	if !slices.Contains(viper.SupportedExts, ext) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, opts.ConfigFile)
	}
	v.SetConfigFile(opts.ConfigFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", opts.ConfigFile, err)
	}
	return v, nil
}

// Apply sets every flag of fs that was not given on the command line and
// has a value in v.
func Apply(v *viper.Viper, fs *pflag.FlagSet) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		if err := fs.Set(f.Name, value(v, f)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Name, err))
		}
	})
	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidValue, errs)
	}
	return nil
}

// value renders the configured value of f the way pflag parses it.
func value(v *viper.Viper, f *pflag.Flag) string {
	switch v.Get(f.Name).(type) {
	case []any, []string:
		return strings.Join(v.GetStringSlice(f.Name), ",")
	}
	return v.GetString(f.Name)
}
