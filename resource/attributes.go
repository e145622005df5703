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

import (
	"sort"

	uref "dirpx.dev/assoc/utils/reflect"
)

// Attributes is the attribute bag of a model. Keys are attribute names,
// values are arbitrary data: scalars, nested maps and lists, or live
// child resources.
type Attributes map[string]any

// AsAttributes views v as Attributes. Any string-keyed map is accepted;
// nil yields an empty bag.
func AsAttributes(v any) (Attributes, error) {
	if a, ok := v.(Attributes); ok {
		if a == nil {
			return Attributes{}, nil
		}
		return a, nil
	}
	m, err := uref.Map(v)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return Attributes{}, nil
	}
	return Attributes(m), nil
}

// Get returns the value stored under key, or nil.
func (a Attributes) Get(key string) any { return a[key] }

// Has reports whether key is present with a non-nil value.
func (a Attributes) Has(key string) bool {
	v, ok := a[key]
	return ok && v != nil
}

// Clone returns a shallow copy. A nil bag clones to an empty one.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// DeepClone copies nested maps and lists; live resources are shared.
func (a Attributes) DeepClone() Attributes {
	out, _ := uref.Copy(map[string]any(a.Clone())).(map[string]any)
	return Attributes(out)
}

// Omit returns a copy without the given keys.
func (a Attributes) Omit(keys ...string) Attributes {
	out := a.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Pick returns a copy holding only the given keys that are present.
func (a Attributes) Pick(keys ...string) Attributes {
	out := make(Attributes, len(keys))
	for _, k := range keys {
		if v, ok := a[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Keys returns the keys in lexical order.
func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge layers bags left to right; later layers win.
func Merge(layers ...Attributes) Attributes {
	n := 0
	for _, l := range layers {
		n += len(l)
	}
	out := make(Attributes, n)
	for _, l := range layers {
		for k, v := range l {
			out[k] = v
		}
	}
	return out
}
