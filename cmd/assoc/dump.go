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
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"dirpx.dev/assoc/resource"
)

// node is the plain view of a materialized model printed by dump.
type node struct {
	Class      string
	URL        string
	Attributes map[string]any
	Children   map[string]any
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump CLASS [FILE]",
		Short: "Build a model from JSON and dump its resource tree",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.materialize(cmd, args)
			if err != nil {
				return err
			}
			dumpConfig.Fdump(cmd.OutOrStdout(), tree(m))
			return nil
		},
	}
}

// tree converts models and collections into nodes; other values are returned
// unchanged.
func tree(v any) any {
	switch r := v.(type) {
	case *resource.Model:
		n := &node{Class: r.Class().Name(), Attributes: map[string]any{}}
		if u, err := r.URL(); err == nil {
			n.URL = u
		}
		for k, val := range r.Attributes() {
			switch val.(type) {
			case *resource.Model, *resource.Collection:
				if n.Children == nil {
					n.Children = map[string]any{}
				}
				n.Children[k] = tree(val)
			default:
				n.Attributes[k] = val
			}
		}
		return n
	case *resource.Collection:
		members := make([]any, 0, r.Len())
		for _, m := range r.Models() {
			members = append(members, tree(m))
		}
		return members
	}
	return v
}
