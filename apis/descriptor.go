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

package apis

import (
	"sort"

	"dirpx.dev/assoc/resource"
)

// URLRule is the path segment appended to the owner's URL to form the URL of
// a built child.
type URLRule interface {
	ResolveURL() string
}

// URL is a constant URLRule.
type URL string

// ResolveURL implements URLRule.
func (u URL) ResolveURL() string { return string(u) }

// URLFunc is a URLRule evaluated on every call.
type URLFunc func() string

// ResolveURL implements URLRule.
func (f URLFunc) ResolveURL() string {
	if f == nil {
		return ""
	}
	return f()
}

// Descriptor declares one relationship key.
type Descriptor struct {
	// Type is the child type. Required.
	Type resource.Type
	// Reset replaces collection members on update instead of merging them.
	Reset bool
	// URL, when set, derives the child's URL from its owner's.
	URL URLRule
}

// Relationships is the declaration record passed to Declare.
type Relationships map[string]Descriptor

// Table maps relationship keys to descriptors. Tables handed out by the
// registry and resolver are copies.
type Table map[string]Descriptor

// Clone returns a copy of t; a nil table clones to an empty one.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, d := range t {
		out[k] = d
	}
	return out
}

// Keys returns the keys in lexical order.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
