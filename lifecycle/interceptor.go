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

package lifecycle

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"dirpx.dev/assoc/apis"
	"dirpx.dev/assoc/resource"
	"dirpx.dev/assoc/wrap"
)

// Interceptor keeps lifecycle patches and accessors consistent with a
// registry. A class carries a patch for a slot when it has relationships and
// either its parent has none or it implements the slot itself; every other
// associated class reaches a patched implementation through inheritance.
type Interceptor struct {
	mu        sync.Mutex
	ext       *Extensions
	patches   map[*resource.Class]map[string]*wrap.Patch
	accessors map[*resource.Class]map[string]struct{}
}

// NewInterceptor returns an interceptor installing ext's decorators.
func NewInterceptor(ext *Extensions) *Interceptor {
	return &Interceptor{
		ext:       ext,
		patches:   make(map[*resource.Class]map[string]*wrap.Patch),
		accessors: make(map[*resource.Class]map[string]struct{}),
	}
}

// Sync reconciles patches and accessors with reg. Restores run deepest class
// first, installs shallowest first.
func (i *Interceptor) Sync(reg apis.Registry) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	candidates := i.candidates(reg)
	var errs []error

	for _, c := range candidates {
		own, _ := reg.Own(c)
		i.syncAccessors(c, own)
	}

	for j := len(candidates) - 1; j >= 0; j-- {
		c := candidates[j]
		for _, hook := range resource.Hooks {
			p := i.patches[c][hook]
			if p == nil || i.wants(reg, c, hook) {
				continue
			}
			if err := p.Restore(); err != nil {
				errs = append(errs, fmt.Errorf("%s.%s: %w", c.Name(), hook, err))
				continue
			}
			delete(i.patches[c], hook)
		}
		if len(i.patches[c]) == 0 {
			delete(i.patches, c)
		}
	}

	for _, c := range candidates {
		for _, hook := range resource.Hooks {
			if i.patches[c][hook] != nil || !i.wants(reg, c, hook) {
				continue
			}
			p, err := i.install(c, hook)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s.%s: %w", c.Name(), hook, err))
				continue
			}
			if i.patches[c] == nil {
				i.patches[c] = make(map[string]*wrap.Patch, len(resource.Hooks))
			}
			i.patches[c][hook] = p
		}
	}
	return errors.Join(errs...)
}

// Patched returns the slots c currently carries a patch for.
func (i *Interceptor) Patched(c *resource.Class) []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	var out []string
	for _, hook := range resource.Hooks {
		if i.patches[c][hook] != nil {
			out = append(out, hook)
		}
	}
	return out
}

// candidates returns every class whose patches or accessors may need to
// change, ordered by depth then name.
func (i *Interceptor) candidates(reg apis.Registry) []*resource.Class {
	seen := make(map[*resource.Class]struct{})
	var walk func(c *resource.Class)
	walk = func(c *resource.Class) {
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		for _, sub := range c.Subclasses() {
			walk(sub)
		}
	}
	for _, e := range reg.Entries() {
		walk(e.Class)
	}
	for c := range i.patches {
		seen[c] = struct{}{}
	}
	for c := range i.accessors {
		seen[c] = struct{}{}
	}

	out := make([]*resource.Class, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Depth() != out[b].Depth() {
			return out[a].Depth() < out[b].Depth()
		}
		return out[a].Name() < out[b].Name()
	})
	return out
}

func associated(reg apis.Registry, c *resource.Class) bool {
	for k := c; k != nil; k = k.Parent() {
		if reg.Declared(k) {
			return true
		}
	}
	return false
}

// wants reports whether c should carry its own patch for hook.
func (i *Interceptor) wants(reg apis.Registry, c *resource.Class, hook string) bool {
	if !associated(reg, c) {
		return false
	}
	if c.Parent() == nil || !associated(reg, c.Parent()) {
		return true
	}
	if p := i.patches[c][hook]; p != nil && p.Active() {
		return p.HadOwn()
	}
	_, own := c.OwnMethod(hook)
	return own
}

func (i *Interceptor) install(c *resource.Class, hook string) (*wrap.Patch, error) {
	switch hook {
	case resource.HookInitialize:
		return wrap.Install(c, hook, i.ext.Initialize)
	case resource.HookSet:
		return wrap.Install(c, hook, i.ext.Set)
	case resource.HookParse:
		return wrap.Install(c, hook, i.ext.Parse)
	case resource.HookToJSON:
		return wrap.Install(c, hook, i.ext.ToJSON)
	}
	return nil, fmt.Errorf("%w: %s", wrap.ErrUnknownMethod, hook)
}

// syncAccessors makes c's engine-defined accessors match the keys of its
// own table.
func (i *Interceptor) syncAccessors(c *resource.Class, own apis.Table) {
	have := i.accessors[c]
	for key := range have {
		if _, ok := own[key]; !ok {
			c.RemoveAccessor(key)
			delete(have, key)
		}
	}
	for key := range own {
		if _, ok := have[key]; ok {
			continue
		}
		if have == nil {
			have = make(map[string]struct{}, len(own))
			i.accessors[c] = have
		}
		c.DefineAccessor(key)
		have[key] = struct{}{}
	}
	if len(have) == 0 {
		delete(i.accessors, c)
	}
}
