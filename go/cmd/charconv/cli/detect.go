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
	"strconv"

	"github.com/spf13/cobra"

	"vitess.io/charconv/go/charconv/detect"
)

func (a *app) detectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [file...]",
		Short: "Guesses the encoding of files, or standard input, from their first bytes.",
		Long: "Guesses the encoding of each input from its byte order mark or, when there is none,\n" +
			"from the pattern of zero bytes at its start. Inputs that fit no pattern are reported as UNKNOWN.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			table := newTable(cmd.OutOrStdout(), "File", "Encoding", "BOM")
			for _, name := range args {
				res, err := a.detect(cmd, name)
				if err != nil {
					return err
				}
				if err := table.Append([]string{displayName(name), res.Encoding.String(), strconv.Itoa(res.BOMLength)}); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
}

func (a *app) detect(cmd *cobra.Command, name string) (detect.Result, error) {
	in, err := a.input(cmd, name)
	if err != nil {
		return detect.Result{}, err
	}
	defer in.Close()
	return detect.Peek(bufio.NewReader(in))
}
