/*
   Copyright 2025 The DIRPX Authors.

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

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"dirpx.dev/assoc"
)

func newTablesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print the effective relationship table of every schema class",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.catalog == nil {
				return errNoSchema
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CLASS\tKEY\tTYPE\tRESET\tURL")
			for _, name := range a.catalog.Classes() {
				c, _ := a.catalog.Class(name)
				table := assoc.Effective(c)
				for _, key := range table.Keys() {
					d := table[key]
					url := "-"
					if d.URL != nil {
						url = d.URL.ResolveURL()
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n", name, key, d.Type.Name(), d.Reset, url)
				}
			}
			return w.Flush()
		},
	}
}
