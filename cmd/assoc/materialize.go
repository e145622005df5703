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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"dirpx.dev/assoc/resource"
)

func newMaterializeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "materialize CLASS [FILE]",
		Short: "Build a model from JSON and print its serialized form",
		Long: "Reads a JSON object from FILE (or stdin when FILE is - or omitted),\n" +
			"builds an instance of CLASS with its declared children and prints\n" +
			"the result.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.materialize(cmd, args)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), m.ToJSON())
		},
	}
}

// materialize builds args[0] from the JSON document named by args[1].
func (a *app) materialize(cmd *cobra.Command, args []string) (*resource.Model, error) {
	c, err := a.class(args[0])
	if err != nil {
		return nil, err
	}
	src := "-"
	if len(args) > 1 {
		src = args[1]
	}
	attrs, err := readAttributes(cmd.InOrStdin(), src)
	if err != nil {
		return nil, err
	}
	m, err := c.New(attrs, resource.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("materialize %s: %w", c.Name(), err)
	}
	a.logger.Debug("materialized", "class", c.Name(), "model", m.String())
	return m, nil
}

func readAttributes(stdin io.Reader, src string) (resource.Attributes, error) {
	r := stdin
	if src != "-" {
		f, err := os.Open(src)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var attrs resource.Attributes
	dec := json.NewDecoder(r)
	if err := dec.Decode(&attrs); err != nil {
		if err == io.EOF {
			return resource.Attributes{}, nil
		}
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	return attrs, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
