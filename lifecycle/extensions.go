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

// Package lifecycle routes declared relationship keys through the update
// strategies. Extensions holds the four slot decorators (initialize, set,
// parse, toJSON) and the filter they share; Interceptor keeps the decorators
// installed on exactly the classes that need them.
package lifecycle

import (
	"fmt"

	"dirpx.dev/assoc/apis"
	"dirpx.dev/assoc/resource"
)

// Environment supplies the engine state a decorator reads at call time.
type Environment interface {
	Config() apis.Config
	Resolver() apis.Resolver
	Updater() apis.Updater
}

// NewEnvironment returns a fixed Environment.
func NewEnvironment(cfg apis.Config, res apis.Resolver, upd apis.Updater) Environment {
	return staticEnv{cfg: cfg, res: res, upd: upd}
}

type staticEnv struct {
	cfg apis.Config
	res apis.Resolver
	upd apis.Updater
}

func (e staticEnv) Config() apis.Config     { return e.cfg }
func (e staticEnv) Resolver() apis.Resolver { return e.res }
func (e staticEnv) Updater() apis.Updater   { return e.upd }

// Extensions holds the relationship-aware slot decorators.
type Extensions struct {
	env Environment
}

// NewExtensions returns decorators bound to env.
func NewExtensions(env Environment) *Extensions {
	return &Extensions{env: env}
}

// Filter returns a copy of attrs in which every declared key has been
// decided by the updater: handled keys are removed (the live child was
// updated in place or adopted), the others carry the value the base set must
// store. attrs itself is never modified.
func (e *Extensions) Filter(m *resource.Model, attrs resource.Attributes, opts resource.Options) (resource.Attributes, error) {
	out := attrs.Clone()
	table := e.env.Resolver().Resolve(m.Class())
	if len(table) == 0 {
		return out, nil
	}
	cfg, upd := e.env.Config(), e.env.Updater()
	for _, key := range table.Keys() {
		incoming, present := out[key]
		o, err := upd.Apply(apis.Slot{
			Owner:      m,
			Key:        key,
			Descriptor: table[key],
			Current:    m.Get(key),
			Incoming:   incoming,
			Present:    present,
			Options:    opts,
		}, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", m.Class().Name(), key, err)
		}
		switch {
		case o.Action == apis.ActionAdopt:
			m.Replace(key, o.Value)
			delete(out, key)
		case o.Handled:
			delete(out, key)
		default:
			out[key] = o.Value
		}
	}
	return out, nil
}

// Initialize seeds an empty child for every declared key the model does not
// hold yet, then runs the original initializer.
func (e *Extensions) Initialize(orig resource.InitializeFunc) resource.InitializeFunc {
	return func(m *resource.Model, attrs resource.Attributes, opts resource.Options) error {
		table := e.env.Resolver().Resolve(m.Class())
		cfg, upd := e.env.Config(), e.env.Updater()
		for _, key := range table.Keys() {
			if m.Has(key) {
				continue
			}
			o, err := upd.Apply(apis.Slot{
				Owner:      m,
				Key:        key,
				Descriptor: table[key],
				Options:    opts,
			}, cfg)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", m.Class().Name(), key, err)
			}
			if o.Value != nil {
				m.Replace(key, o.Value)
			}
		}
		return orig(m, attrs, opts)
	}
}

// Set filters attrs before the original set stores them.
func (e *Extensions) Set(orig resource.SetFunc) resource.SetFunc {
	return func(m *resource.Model, attrs resource.Attributes, opts resource.Options) error {
		filtered, err := e.Filter(m, attrs, opts)
		if err != nil {
			return err
		}
		return orig(m, filtered, opts)
	}
}

// Parse filters the combined view of defaults, current attributes and the
// response before the original parse sees it.
func (e *Extensions) Parse(orig resource.ParseFunc) resource.ParseFunc {
	return func(m *resource.Model, data resource.Attributes, opts resource.Options) (resource.Attributes, error) {
		combined := resource.Merge(m.Class().Defaults(), m.Attributes(), data)
		filtered, err := e.Filter(m, combined, opts)
		if err != nil {
			return nil, err
		}
		return orig(m, filtered, opts)
	}
}

// ToJSON replaces every declared key holding a child with the child's own
// serialized form, passing opts through.
func (e *Extensions) ToJSON(orig resource.ToJSONFunc) resource.ToJSONFunc {
	return func(m *resource.Model, opts resource.Options) resource.Attributes {
		out := orig(m, opts)
		if out == nil {
			return out
		}
		table := e.env.Resolver().Resolve(m.Class())
		for key, d := range table {
			v, ok := out[key]
			if !ok || !d.Type.IsInstance(v) {
				continue
			}
			if r, ok := v.(resource.Resource); ok {
				out[key] = r.Serialize(opts)
			}
		}
		return out
	}
}
