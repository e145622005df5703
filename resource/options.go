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

package resource

// Options carries per-call flags through construction, set, parse,
// serialization and sync. The zero value is the default.
type Options struct {
	// Parse runs the parse hook on incoming data before it is set.
	Parse bool
	// Silent suppresses events.
	Silent bool
	// KeepMissing makes Collection.Set leave members that are not in the
	// incoming list in place instead of removing them.
	KeepMissing bool
	// Reset makes Collection.Fetch replace the members instead of merging.
	Reset bool
	// Extra holds caller-defined options, passed through untouched.
	Extra map[string]any

	depth int
	owner *Collection
}

// Depth returns how many relationship levels below the top-level call
// these options are.
func (o Options) Depth() int { return o.depth }

// Nested returns the options to use one relationship level deeper.
func (o Options) Nested() Options {
	o.depth++
	o.owner = nil
	return o
}

// Get returns the caller-defined option stored under key.
func (o Options) Get(key string) any {
	if o.Extra == nil {
		return nil
	}
	return o.Extra[key]
}

func (o Options) withOwner(c *Collection) Options {
	o.owner = c
	return o
}

func first(opts []Options) Options {
	if len(opts) == 0 {
		return Options{}
	}
	return opts[0]
}
