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
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"vitess.io/charconv/go/charconv"
	"vitess.io/charconv/go/charconv/codec"
	"vitess.io/charconv/go/charconv/encoding"
	"vitess.io/charconv/go/flagutil"
	"vitess.io/charconv/go/vterrors"
)

func (a *app) validateCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Checks that files, or standard input, are validly encoded.",
		Long: "Checks that each input is a well formed byte sequence in the given encoding.\n" +
			"A NUL character ends the content and nothing after it is checked, as does a lone\n" +
			"trailing 0x00 byte in a multi-byte encoding. The command fails if any input is invalid.",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := encoding.Lookup(name)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{"-"}
			}
			return a.validate(cmd, enc, args)
		},
	}
	flagutil.SetFlagStringVar(cmd.Flags(), &name, "encoding", encoding.UTF8.String(), "encoding to validate against")
	return cmd
}

func (a *app) validate(cmd *cobra.Command, enc encoding.Encoding, names []string) error {
	dec, err := codec.NewDecoder(enc, codec.Throw)
	if err != nil {
		return err
	}

	table := newTable(cmd.OutOrStdout(), "File", "Encoding", "Valid", "Code Points", "Valid Bytes", "Size")
	invalid := 0
	for _, name := range names {
		data, err := a.readAll(cmd, name)
		if err != nil {
			return err
		}
		valid, err := charconv.Validate(data, enc)
		if err != nil {
			return err
		}
		if !valid {
			invalid++
		}
		codepoints, validBytes := dec.CountValid(data)
		row := []string{
			displayName(name),
			enc.String(),
			strconv.FormatBool(valid),
			humanize.Comma(int64(codepoints)),
			humanize.Comma(int64(validBytes)),
			humanize.IBytes(uint64(len(data))),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if invalid > 0 {
		return vterrors.NewErrorf(vterrors.InvalidArgument, vterrors.MalformedInput,
			"%d of %d inputs are not valid %s", invalid, len(names), enc)
	}
	return nil
}

func (a *app) readAll(cmd *cobra.Command, name string) ([]byte, error) {
	in, err := a.input(cmd, name)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return io.ReadAll(in)
}
