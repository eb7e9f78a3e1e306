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
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"vitess.io/charconv/go/charconv/encoding"
)

func (a *app) encodingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encodings",
		Short: "Lists the supported encodings.",
		Long: "Lists the supported encodings with their aliases. Any IANA name or WHATWG label\n" +
			"of a listed encoding is accepted as well.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := newTable(cmd.OutOrStdout(), "Name", "Aliases", "Family", "Unit", "Max Bytes", "Byte Order")
			for _, enc := range encoding.All() {
				info := enc.Info()
				row := []string{
					info.Name,
					strings.Join(info.Aliases, ", "),
					info.Family.String(),
					strconv.Itoa(info.UnitSize),
					strconv.Itoa(info.MaxRuneSize),
					info.Endian.String(),
				}
				if err := table.Append(row); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
}
