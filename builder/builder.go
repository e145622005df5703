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

package builder

import (
	"dirpx.dev/assoc/apis"
	"dirpx.dev/assoc/registry"
	"dirpx.dev/assoc/resolver"
	"dirpx.dev/assoc/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry for cfg. If a previous
// registry is provided, its declarations are copied into the new one.
func (b *builder) BuildRegistry(cfg apis.Config, preg apis.Registry, _ any) apis.Registry {
	nreg := registry.New(cfg)
	if preg != nil {
		for _, e := range preg.Entries() {
			_ = nreg.Declare(e.Class, apis.Relationships(e.Table))
		}
	}
	return nreg
}

// BuildResolver builds and returns a memoizing apis.Resolver over reg.
func (b *builder) BuildResolver(_ apis.Config, reg apis.Registry, _ apis.Resolver, _ any) apis.Resolver {
	return resolver.New(reg)
}

// BuildUpdater builds the strategy chain. When ext is a []apis.Strategy it
// replaces strategy.Default.
func (b *builder) BuildUpdater(_ apis.Config, _ apis.Updater, ext any) apis.Updater {
	if strats, ok := ext.([]apis.Strategy); ok && len(strats) > 0 {
		return resolver.NewChain(strats...)
	}
	return resolver.NewChain(strategy.Default()...)
}
