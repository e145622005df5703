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

// Package assoc declares parent/child relationships between resource
// classes and keeps them alive across the resource lifecycle.
//
// A relationship names an attribute key and the class (model or collection)
// that key holds:
//
//	assoc.Declare(Country, assoc.Relationships{
//		"flag":   {Type: Flag},
//		"cities": {Type: Cities, URL: apis.URL("/cities")},
//	})
//
// From then on every Country is constructed with an empty Flag and an empty
// Cities collection, nested data given to New, Set or Parse is merged into
// those live children instead of replacing them, and ToJSON flattens the
// children back into plain data.
//
// # Design
//
// The engine is made of four layers, each behind an interface in apis:
//
//   - Registry: the own relationship table of every declared class. Tables
//     are copied on every read and write, so a subclass declaration never
//     leaks into its parent or siblings.
//
//   - Resolver: computes the effective table of a class, the union of the
//     own tables along its ancestor chain with the nearest class winning.
//
//   - Updater: a chain of strategies deciding, per declared key, how an
//     incoming value meets the value in storage (adopt, keep, clear, merge,
//     upsert, reset, pass, build).
//
//   - Builder: constructs the three layers above for a Config.
//
// The current layers live in an immutable snapshot behind an atomic pointer.
// Readers load the pointer and never lock; writers hold a build mutex, build
// a new snapshot and swap it in. A registry installed with SetRegistry is
// pinned and survives later rebuilds.
//
// Interception is explicit: the top-most declared class of a chain carries a
// restorable decorator (package wrap) on each of its initialize, set, parse
// and toJSON slots. Subclasses inherit the decorated slots; a subclass that
// implements a slot itself gets its own decorator. The decorators are kept
// consistent with the registry after every Declare, Undeclare, snapshot
// change and class derivation.
//
// # Global API
//
//  1. Declarations:
//
//     Declare(c, rels) error
//     Undeclare(c) error
//     Effective(c) apis.Table
//     Declared(c) bool
//     Patched(c) []string
//     ExtendError() error
//
//  2. Snapshot:
//
//     Config() / SetConfig(cfg)
//     Registry() / SetRegistry(reg) / PinRegistry() / UnpinRegistry()
//     Resolver(), Updater()
//     Builder() / SetBuilder(b)
//     SetExt(ext) / ExtAs[T]()
//     SetAll(cfg, ext, reg, bld)
//     Reset()
//
// All functions are safe for concurrent use. Individual models and
// collections are not: mutate each from one goroutine at a time.
package assoc
