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

package resolver

import (
	"sync"

	"dirpx.dev/assoc/apis"
	"dirpx.dev/assoc/resource"
)

// New constructs an apis.Resolver over reg. Effective tables are memoized
// per class and recomputed whenever the registry generation moves.
func New(reg apis.Registry) apis.Resolver {
	return &tables{reg: reg}
}

type memo struct {
	gen   uint64
	table apis.Table
}

// tables resolves inherited relationship tables.
type tables struct {
	reg   apis.Registry
	cache sync.Map // map[*resource.Class]memo
}

// Resolve returns the union of own tables from the root class down to c,
// nearest declaration winning.
func (r *tables) Resolve(c *resource.Class) apis.Table {
	if c == nil || r.reg == nil {
		return apis.Table{}
	}
	gen := r.reg.Generation()
	if v, ok := r.cache.Load(c); ok {
		if m := v.(memo); m.gen == gen {
			return m.table.Clone()
		}
	}

	var chain []*resource.Class
	for k := c; k != nil; k = k.Parent() {
		chain = append(chain, k)
	}
	out := apis.Table{}
	for i := len(chain) - 1; i >= 0; i-- {
		own, ok := r.reg.Own(chain[i])
		if !ok {
			continue
		}
		for k, d := range own {
			out[k] = d
		}
	}

	// Only publish if nothing was written meanwhile.
	if r.reg.Generation() == gen {
		r.cache.Store(c, memo{gen: gen, table: out})
	}
	return out.Clone()
}
