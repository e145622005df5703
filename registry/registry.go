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

package registry

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"dirpx.dev/assoc/apis"
	"dirpx.dev/assoc/config"
	"dirpx.dev/assoc/resource"
)

// ErrUnknownClass is returned by Undeclare for a nil class.
var ErrUnknownClass = errors.New("assoc(registry): nil class")

// New constructs a Registry that applies cfg's redeclare policy.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = config.DefaultMaxDepth
	}
	return &registry{cfg: cfg}
}

// registry is a simple Registry implementation backed by sync.Map.
// Stored tables are never mutated after Store; writers replace them.
type registry struct {
	// cfg holds the redeclare policy.
	cfg apis.Config
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps *resource.Class to its own apis.Table.
	m sync.Map // map[*resource.Class]apis.Table
	// count tracks the number of declared classes.
	count int
	// gen increases on every successful write.
	gen atomic.Uint64
}

// Declare merges rels into c's own table. Every key is validated before
// anything is written.
func (r *registry) Declare(c *resource.Class, rels apis.Relationships) error {
	// Validate inputs early.
	if c == nil {
		return &apis.ConfigurationError{Err: apis.ErrNilClass}
	}
	keys := make([]string, 0, len(rels))
	for k := range rels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := validate(c, k, rels[k]); err != nil {
			return err
		}
	}

	// Write path: guard with a mutex to keep counter consistent and avoid ABA.
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, had := r.load(c)
	if had && r.cfg.Redeclare == apis.RedeclareReject {
		for _, k := range keys {
			if _, dup := prev[k]; dup {
				return &apis.ConfigurationError{Class: c.Name(), Key: k, Err: apis.ErrRedeclared}
			}
		}
	}

	next := prev.Clone()
	for _, k := range keys {
		next[k] = rels[k]
	}
	r.m.Store(c, next)
	if !had {
		r.count++
	}
	r.gen.Add(1)
	return nil
}

func validate(c *resource.Class, key string, d apis.Descriptor) error {
	if strings.TrimSpace(key) == "" {
		return &apis.ConfigurationError{Class: c.Name(), Key: key, Err: apis.ErrEmptyKey}
	}
	if isNil(d.Type) {
		return &apis.ConfigurationError{Class: c.Name(), Key: key, Err: apis.ErrNilType}
	}
	if t, ok := d.Type.(*resource.Class); ok && t == c {
		return &apis.ConfigurationError{Class: c.Name(), Key: key, Err: apis.ErrSelfReference}
	}
	return nil
}

// isNil reports whether t is nil or a typed nil such as (*resource.Class)(nil).
func isNil(t resource.Type) bool {
	if t == nil {
		return true
	}
	v := reflect.ValueOf(t)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Func, reflect.Slice, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// Undeclare drops c's own table.
func (r *registry) Undeclare(c *resource.Class) error {
	if c == nil {
		return ErrUnknownClass
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m.LoadAndDelete(c); !ok {
		return &apis.ConfigurationError{Class: c.Name(), Err: apis.ErrNotDeclared}
	}
	r.count--
	r.gen.Add(1)
	return nil
}

// Own returns a copy of c's own table.
func (r *registry) Own(c *resource.Class) (apis.Table, bool) {
	t, ok := r.load(c)
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// Declared reports whether c has an own table.
func (r *registry) Declared(c *resource.Class) bool {
	_, ok := r.load(c)
	return ok
}

func (r *registry) load(c *resource.Class) (apis.Table, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := r.m.Load(c)
	if !ok {
		return nil, false
	}
	return v.(apis.Table), true
}

// Entries returns a snapshot ordered by class depth, then name.
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Class: key.(*resource.Class),
			Table: value.(apis.Table).Clone(),
		})
		return true
	})
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Class, entries[j].Class
		if a.Depth() != b.Depth() {
			return a.Depth() < b.Depth()
		}
		return a.Name() < b.Name()
	})
	return entries
}

// Count returns the number of declared classes.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Generation increases on every successful write.
func (r *registry) Generation() uint64 { return r.gen.Load() }

// Reset clears all declarations.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Range(func(key, _ any) bool {
		r.m.Delete(key)
		return true
	})
	r.count = 0
	r.gen.Add(1)
}
