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

package assoc

import (
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/assoc/apis"
	"dirpx.dev/assoc/builder"
	"dirpx.dev/assoc/config"
	"dirpx.dev/assoc/lifecycle"
	"dirpx.dev/assoc/resource"
)

// Relationships maps attribute keys to their descriptors.
type Relationships = apis.Relationships

// Descriptor declares a single relationship.
type Descriptor = apis.Descriptor

// init publishes the default snapshot and keeps patches current as new
// classes are derived.
func init() {
	st.Store(defaultState())
	interceptor = lifecycle.NewInterceptor(lifecycle.NewExtensions(environment{}))
	resource.OnExtend(func(*resource.Class) {
		buildMu.Lock()
		defer buildMu.Unlock()
		if err := interceptor.Sync(st.Load().reg); err != nil {
			extendErr = errors.Join(extendErr, err)
		}
	})
}

// ExtendError returns the errors collected while resyncing patches for
// classes created with Class.Extend since the last call, and clears them.
func ExtendError() error {
	buildMu.Lock()
	defer buildMu.Unlock()
	err := extendErr
	extendErr = nil
	return err
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("assoc: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("assoc: builder returned nil resolver")
	// ErrNilUpdater is returned when a builder returns a nil updater.
	ErrNilUpdater = errors.New("assoc: builder returned nil updater")
)

// Declare adds rels to c's own relationship table and installs the
// lifecycle patches and accessors c needs. On error nothing changes.
func Declare(c *resource.Class, rels Relationships) error {
	buildMu.Lock()
	defer buildMu.Unlock()
	if err := st.Load().reg.Declare(c, rels); err != nil {
		return err
	}
	return interceptor.Sync(st.Load().reg)
}

// Undeclare removes c's own relationships, restores the slots it patched and
// drops its accessors. Ancestors and siblings are not affected.
func Undeclare(c *resource.Class) error {
	buildMu.Lock()
	defer buildMu.Unlock()
	if err := st.Load().reg.Undeclare(c); err != nil {
		return err
	}
	return interceptor.Sync(st.Load().reg)
}

// Effective returns the relationship table c resolves to, including
// inherited keys. The result is a copy.
func Effective(c *resource.Class) apis.Table {
	return st.Load().res.Resolve(c)
}

// Declared reports whether c has own relationships.
func Declared(c *resource.Class) bool {
	return st.Load().reg.Declared(c)
}

// Patched returns the lifecycle slots c carries its own patch for.
func Patched(c *resource.Class) []string {
	return interceptor.Patched(c)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig validates cfg and rebuilds the unpinned layers with it.
func SetConfig(cfg apis.Config) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}
	return update(func(next *state) { next.cfg = cfg })
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry installs reg as the global registry and pins it, so later
// configuration or builder changes keep it. A nil reg is ignored.
func SetRegistry(reg apis.Registry) error {
	if reg == nil {
		return nil
	}
	return update(func(next *state) {
		next.reg = reg
		next.preg = true
	})
}

// IsRegistryPinned reports whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry keeps the current registry across rebuilds.
func PinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()
	next := *st.Load()
	next.preg = true
	st.Store(&next)
}

// UnpinRegistry lets the next rebuild replace the registry again.
func UnpinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()
	next := *st.Load()
	next.preg = false
	st.Store(&next)
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// Updater returns the global update strategy chain.
func Updater() apis.Updater {
	return st.Load().upd
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder installs b and rebuilds the unpinned layers with it. A nil b is
// ignored.
func SetBuilder(b apis.Builder) error {
	if b == nil {
		return nil
	}
	return update(func(next *state) { next.bld = b })
}

// SetExt replaces the extension value handed to the builder and rebuilds the
// unpinned layers. With the default builder a []apis.Strategy replaces the
// standard strategy chain.
func SetExt[T any](ext T) error {
	return update(func(next *state) { next.ext = ext })
}

// ExtAs returns the global extension value as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// SetAll replaces several components at once. Nil arguments leave the
// corresponding component unchanged, except for ext which is always
// replaced. A non-nil reg is pinned.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, bld apis.Builder) error {
	if cfg != nil {
		if err := config.Validate(*cfg); err != nil {
			return err
		}
	}
	return update(func(next *state) {
		if cfg != nil {
			next.cfg = *cfg
		}
		next.ext = ext
		if reg != nil {
			next.reg = reg
			next.preg = true
		}
		if bld != nil {
			next.bld = bld
		}
	})
}

// Reset drops every declaration and restores the default configuration,
// builder and strategies. Every installed patch is restored.
func Reset() error {
	buildMu.Lock()
	defer buildMu.Unlock()
	st.Store(defaultState())
	return interceptor.Sync(st.Load().reg)
}

var (
	// st is the atomic pointer to the current global state.
	st atomic.Pointer[state]
	// buildMu serializes snapshot writers and declarations, so a rebuild
	// never drops a concurrent Declare.
	buildMu sync.Mutex
	// extendErr collects resync failures from the Extend observer. Guarded
	// by buildMu.
	extendErr error
	// interceptor keeps class slots in line with the current registry.
	interceptor *lifecycle.Interceptor
)

// state is an immutable snapshot of the global engine.
type state struct {
	cfg  apis.Config
	ext  any
	reg  apis.Registry
	res  apis.Resolver
	upd  apis.Updater
	bld  apis.Builder
	preg bool
}

func defaultState() *state {
	s := &state{cfg: config.DefaultConfig(), bld: builder.New()}
	s.reg = s.bld.BuildRegistry(s.cfg, nil, nil)
	s.res = s.bld.BuildResolver(s.cfg, s.reg, nil, nil)
	s.upd = s.bld.BuildUpdater(s.cfg, nil, nil)
	return s
}

// update copies the current snapshot, lets mutate change it, rebuilds the
// derived layers, publishes the result and resyncs the interceptor.
func update(mutate func(next *state)) error {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	mutate(&next)

	if !next.preg {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg, next.ext)
	}
	if next.reg == nil {
		panic(ErrNilRegistry)
	}
	next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res, next.ext)
	if next.res == nil {
		panic(ErrNilResolver)
	}
	next.upd = next.bld.BuildUpdater(next.cfg, old.upd, next.ext)
	if next.upd == nil {
		panic(ErrNilUpdater)
	}

	st.Store(&next)
	return interceptor.Sync(next.reg)
}

// environment reads the current snapshot on every call, so installed patches
// follow configuration and registry swaps.
type environment struct{}

func (environment) Config() apis.Config     { return st.Load().cfg }
func (environment) Resolver() apis.Resolver { return st.Load().res }
func (environment) Updater() apis.Updater   { return st.Load().upd }
