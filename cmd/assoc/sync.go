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

	"github.com/spf13/cobra"

	"dirpx.dev/assoc/resource"
)

func newPutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "put CLASS [FILE]",
		Short: "Build a model from JSON and save it to the store",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.materialize(cmd, args)
			if err != nil {
				return err
			}
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := m.Save(cmd.Context(), s); err != nil {
				return err
			}
			u, err := m.URL()
			if err != nil {
				return err
			}
			a.logger.Info("saved", "class", m.Class().Name(), "url", u)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), u)
			return err
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get CLASS ID",
		Short: "Fetch a model from the store and print its serialized form",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.class(args[0])
			if err != nil {
				return err
			}
			m, err := c.New(resource.Attributes{c.IDAttribute(): args[1]})
			if err != nil {
				return err
			}
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := m.Fetch(cmd.Context(), s); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), m.ToJSON())
		},
	}
}
