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
	"bufio"
	"bytes"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"vitess.io/charconv/go/charconv/detect"
	"vitess.io/charconv/go/charconv/encoding"
	"vitess.io/charconv/go/charconv/textio"
	"vitess.io/charconv/go/flagutil"
	"vitess.io/charconv/go/ioutil"
	"vitess.io/charconv/go/log"
	"vitess.io/charconv/go/vterrors"
)

func (a *app) convertCmd() *cobra.Command {
	var (
		from, to, out string
		stripBOM      bool
	)
	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Converts a file, or standard input, to another encoding.",
		Example: "charconv convert --from windows-1252 --to UTF-8 legacy.txt\n" +
			"charconv convert --to UTF-16LE --strip-bom --output out.txt in.txt",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			return a.convert(cmd, name, from, to, out, stripBOM)
		},
	}

	fs := cmd.Flags()
	flagutil.SetFlagStringVar(fs, &from, "from", "auto", "source encoding, or auto to detect it from the input")
	flagutil.SetFlagStringVar(fs, &to, "to", encoding.UTF8.String(), "target encoding")
	flagutil.SetFlagStringVar(fs, &out, "output", "", "output file, standard output if empty")
	flagutil.SetFlagBoolVar(fs, &stripBOM, "strip-bom", false, "drop a leading byte order mark of the source encoding")
	return cmd
}

func (a *app) convert(cmd *cobra.Command, name, from, to, out string, stripBOM bool) error {
	dst, err := encoding.Lookup(to)
	if err != nil {
		return err
	}

	in, err := a.input(cmd, name)
	if err != nil {
		return err
	}
	defer in.Close()

	mr := ioutil.NewMeteredReader(in)
	br := bufio.NewReader(mr)
	src, err := sourceEncoding(br, from, stripBOM)
	if err != nil {
		return vterrors.Wrapf(err, "reading %s", displayName(name))
	}

	w, err := a.output(cmd, out)
	if err != nil {
		return err
	}
	mw := ioutil.NewMeteredWriter(w)
	_, _, err = textio.Copy(mw, br, src, dst, a.errorPolicy())
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return vterrors.Wrapf(err, "converting %s from %s to %s", displayName(name), src, dst)
	}

	log.InfoS("converted",
		"file", displayName(name),
		"from", src.String(),
		"to", dst.String(),
		"read", humanize.IBytes(uint64(mr.Bytes())),
		"written", humanize.IBytes(uint64(mw.Bytes())),
		"read_time", mr.Duration(),
		"write_time", mw.Duration())
	return nil
}

// sourceEncoding resolves the source encoding of br, detecting it for
// "auto", and discards the byte order mark if asked to.
func sourceEncoding(br *bufio.Reader, from string, stripBOM bool) (encoding.Encoding, error) {
	if from == "" || strings.EqualFold(from, "auto") {
		res, err := detect.Peek(br)
		if stripBOM && err == nil {
			res, err = textio.SkipBOM(br)
		}
		if err != nil {
			return encoding.Unknown, err
		}
		if res.Encoding == encoding.Unknown {
			return encoding.Unknown, vterrors.NewErrorf(vterrors.InvalidArgument, vterrors.UnknownEncodingName,
				"cannot detect the source encoding, use --from")
		}
		return res.Encoding, nil
	}

	enc, err := encoding.Lookup(from)
	if err != nil {
		return encoding.Unknown, err
	}
	if bom := detect.BOM(enc); stripBOM && len(bom) > 0 {
		if p, _ := br.Peek(len(bom)); bytes.Equal(p, bom) {
			if _, err := br.Discard(len(bom)); err != nil {
				return encoding.Unknown, err
			}
		}
	}
	return enc, nil
}
