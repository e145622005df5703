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

// Package reflect normalizes loosely typed attribute data (decoded JSON,
// YAML, hand-written literals) into the two container shapes the resource
// layer works with: map[string]any and []any.
package reflect

import (
	"errors"
	"reflect"
)

var (
	// ErrNotMap is returned when a value cannot be viewed as a string-keyed map.
	ErrNotMap = errors.New("reflect: value is not a string-keyed map")
	// ErrNotList is returned when a value cannot be viewed as a list.
	ErrNotList = errors.New("reflect: value is not a slice or array")
)

// MaxUnwrap limits how many pointer levels Map and List follow.
const MaxUnwrap = 8

var (
	mapType  = reflect.TypeOf(map[string]any(nil))
	listType = reflect.TypeOf([]any(nil))
)

// Map returns v as a map[string]any.
//
// Normalization policy:
//   - nil                        -> nil map, no error
//   - map[string]any or a named type whose underlying type is
//     map[string]any             -> the same map (no copy)
//   - any other map with a string key kind -> a new map with the same entries
//   - pointers are followed up to MaxUnwrap levels
//   - anything else              -> ErrNotMap
func Map(v any) (map[string]any, error) {
	if v == nil {
		return nil, nil
	}
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	rv, ok := unwrap(reflect.ValueOf(v))
	if !ok {
		return nil, nil
	}
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, ErrNotMap
	}
	if rv.Type().ConvertibleTo(mapType) {
		return rv.Convert(mapType).Interface().(map[string]any), nil
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, nil
}

// List returns v as a []any.
//
// Normalization policy mirrors Map: nil yields a nil slice, []any (or a named
// type over it) is returned as-is, other slices and arrays are copied
// element-wise, pointers are followed up to MaxUnwrap levels, and anything
// else yields ErrNotList.
func List(v any) ([]any, error) {
	if v == nil {
		return nil, nil
	}
	if l, ok := v.([]any); ok {
		return l, nil
	}
	rv, ok := unwrap(reflect.ValueOf(v))
	if !ok {
		return nil, nil
	}
	switch rv.Kind() {
	case reflect.Slice:
		if rv.Type().ConvertibleTo(listType) {
			return rv.Convert(listType).Interface().([]any), nil
		}
	case reflect.Array:
	default:
		return nil, ErrNotList
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// Copy returns a deep copy of plain container data. Maps with string keys and
// slices are copied recursively; every other value (including pointers to
// live objects) is shared with the original.
func Copy(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Copy(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Copy(e)
		}
		return out
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), copyValue(iter.Value(), rv.Type().Elem()))
		}
		return out.Interface()
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(copyValue(rv.Index(i), rv.Type().Elem()))
		}
		return out.Interface()
	}
	return v
}

// copyValue deep-copies e and converts the result back to the element type.
func copyValue(e reflect.Value, elem reflect.Type) reflect.Value {
	c := Copy(e.Interface())
	if c == nil {
		return reflect.Zero(elem)
	}
	cv := reflect.ValueOf(c)
	if cv.Type() != elem && cv.Type().ConvertibleTo(elem) {
		cv = cv.Convert(elem)
	}
	return cv
}

// unwrap follows pointers and interfaces up to MaxUnwrap levels.
// It reports false when a nil pointer is reached.
func unwrap(rv reflect.Value) (reflect.Value, bool) {
	for i := 0; i < MaxUnwrap; i++ {
		switch rv.Kind() {
		case reflect.Ptr, reflect.Interface:
			if rv.IsNil() {
				return rv, false
			}
			rv = rv.Elem()
		default:
			return rv, true
		}
	}
	return rv, true
}
