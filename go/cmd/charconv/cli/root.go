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

// Package cli implements the charconv command line.
package cli

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vitess.io/charconv/go/charconv/codec"
	"vitess.io/charconv/go/flagutil"
	"vitess.io/charconv/go/log"
	"vitess.io/charconv/go/viperutil"
)

// EnvPrefix is the prefix of environment variables that set flags.
const EnvPrefix = "CHARCONV"

type app struct {
	fs         afero.Fs
	configFile string
	policy     *flagutil.StringEnum
	config     *viper.Viper
}

// New returns the root command. Input and output files are opened through
// fs.
func New(fs afero.Fs) *cobra.Command {
	a := &app{
		fs:     fs,
		policy: flagutil.NewStringEnum("policy", codec.Replace.String(), codec.PolicyNames()),
	}

	root := &cobra.Command{
		Use:   "charconv",
		Short: "charconv converts text between character encodings.",
		Long: "`charconv` converts text between UTF-8, UTF-16, UTF-32 and legacy code pages.\n\n" +
			"Flags can also be set in a config file (--config) or through " + EnvPrefix + "_* environment variables,\n" +
			"e.g. " + EnvPrefix + "_STRIP_BOM=true. Command line flags take precedence.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.preRun,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Flush()
		},
	}

	pf := root.PersistentFlags()
	flagutil.SetFlagStringVar(pf, &a.configFile, "config", "", "config file (yaml, json or toml)")
	flagutil.SetFlagVar(pf, a.policy, "policy", "how invalid input is handled: THROW, SKIP or REPLACE")
	log.RegisterFlags(pf)

	root.AddCommand(
		a.convertCmd(),
		a.detectCmd(),
		a.validateCmd(),
		a.encodingsCmd(),
		a.serveCmd(),
	)
	return root
}

func (a *app) preRun(cmd *cobra.Command, args []string) error {
	v, err := viperutil.Load(viperutil.Options{
		EnvPrefix:  EnvPrefix,
		ConfigFile: a.configFile,
		Fs:         a.fs,
	})
	if err != nil {
		return err
	}
	if err := viperutil.Apply(v, cmd.Flags()); err != nil {
		return err
	}
	a.config = v
	return log.Init(cmd.Flags())
}

func (a *app) errorPolicy() codec.ErrorPolicy {
	// the flag only accepts valid names
	p, _ := codec.ParsePolicy(a.policy.String())
	return p
}

// input opens the named file, or standard input for "" and "-".
func (a *app) input(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return a.fs.Open(name)
}

// output creates the named file, or returns standard output for "" and
// "-".
func (a *app) output(cmd *cobra.Command, name string) (io.WriteCloser, error) {
	if name == "" || name == "-" {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}
	return a.fs.Create(name)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func newTable(w io.Writer, header ...any) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(header...)
	return table
}

func displayName(name string) string {
	if name == "" || name == "-" {
		return "<stdin>"
	}
	return name
}
