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
	"fmt"
	"reflect"
)

// Hook slot names on a Class method table.
const (
	HookInitialize = "initialize"
	HookSet        = "set"
	HookParse      = "parse"
	HookToJSON     = "toJSON"
)

// Hooks lists every lifecycle slot in installation order.
var Hooks = []string{HookInitialize, HookSet, HookParse, HookToJSON}

type (
	// InitializeFunc runs after construction has set the initial attributes.
	InitializeFunc func(m *Model, attrs Attributes, opts Options) error
	// SetFunc writes attrs into m.
	SetFunc func(m *Model, attrs Attributes, opts Options) error
	// ParseFunc converts a server response into attributes.
	ParseFunc func(m *Model, data Attributes, opts Options) (Attributes, error)
	// ToJSONFunc returns the plain-data form of m.
	ToJSONFunc func(m *Model, opts Options) Attributes
)

// normalizeHook converts fn to the named func type of a known hook slot.
// Unknown slot names accept any value.
func normalizeHook(name string, fn any) (any, error) {
	var ok bool
	switch name {
	case HookInitialize:
		switch f := fn.(type) {
		case InitializeFunc:
			ok = f != nil
		case func(*Model, Attributes, Options) error:
			fn, ok = InitializeFunc(f), f != nil
		}
	case HookSet:
		switch f := fn.(type) {
		case SetFunc:
			ok = f != nil
		case func(*Model, Attributes, Options) error:
			fn, ok = SetFunc(f), f != nil
		}
	case HookParse:
		switch f := fn.(type) {
		case ParseFunc:
			ok = f != nil
		case func(*Model, Attributes, Options) (Attributes, error):
			fn, ok = ParseFunc(f), f != nil
		}
	case HookToJSON:
		switch f := fn.(type) {
		case ToJSONFunc:
			ok = f != nil
		case func(*Model, Options) Attributes:
			fn, ok = ToJSONFunc(f), f != nil
		}
	default:
		ok = true
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s got %T", ErrMethodSignature, name, fn)
	}
	return fn, nil
}

func lookupHook[F any](c *Class, name string, fallback F) F {
	if v, ok := c.LookupMethod(name); ok {
		if f, ok := v.(F); ok {
			return f
		}
	}
	return fallback
}

func baseInitialize(*Model, Attributes, Options) error { return nil }

func baseSet(m *Model, attrs Attributes, opts Options) error {
	var changed []string
	for _, k := range attrs.Keys() {
		v := attrs[k]
		if old, had := m.attrs[k]; had && same(old, v) {
			continue
		}
		m.attrs[k] = v
		changed = append(changed, k)
	}
	if opts.Silent || len(changed) == 0 {
		return nil
	}
	for _, k := range changed {
		m.events.Emit(Event{Name: ChangeEvent(k), Target: m, Model: m, Key: k, Value: m.attrs[k], Options: opts})
	}
	m.events.Emit(Event{Name: EventChange, Target: m, Model: m, Options: opts})
	return nil
}

func baseParse(_ *Model, data Attributes, _ Options) (Attributes, error) { return data, nil }

func baseToJSON(m *Model, _ Options) Attributes { return m.attrs.Clone() }

// same reports whether storing b over a is a no-op. Pointers and channels
// compare by identity, containers and plain values by deep equality.
func same(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil {
		return true
	}
	switch ta.Kind() {
	case reflect.Func:
		return false
	case reflect.Ptr, reflect.Chan, reflect.UnsafePointer:
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
