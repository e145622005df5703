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

	uref "dirpx.dev/assoc/utils/reflect"
)

// SetArgs normalizes the loose argument forms accepted by Model.Assign:
//
//	(key string, value any)
//	(key string, value any, opts Options)
//	(attrs map)
//	(attrs map, opts Options)
//	(attrs map, extra map)        extra becomes Options.Extra
//	(attrs map, ignored, opts Options)
//
// The returned attributes are a copy; the caller's map is never modified.
func SetArgs(args ...any) (Attributes, Options, error) {
	if len(args) == 0 {
		return nil, Options{}, fmt.Errorf("%w: no arguments", ErrInvalidArgs)
	}
	if key, ok := args[0].(string); ok {
		if len(args) < 2 || len(args) > 3 {
			return nil, Options{}, fmt.Errorf("%w: key %q needs a value and optional options", ErrInvalidArgs, key)
		}
		var opts Options
		if len(args) == 3 {
			o, ok := asOptions(args[2])
			if !ok {
				return nil, Options{}, fmt.Errorf("%w: options must be Options, got %T", ErrInvalidArgs, args[2])
			}
			opts = o
		}
		return Attributes{key: args[1]}, opts, nil
	}

	m, err := uref.Map(args[0])
	if err != nil {
		return nil, Options{}, fmt.Errorf("%w: %T is neither a key nor an attribute map", ErrInvalidArgs, args[0])
	}
	attrs := Attributes(m).Clone()

	switch len(args) {
	case 1:
		return attrs, Options{}, nil
	case 2:
		if args[1] == nil {
			return attrs, Options{}, nil
		}
		if o, ok := asOptions(args[1]); ok {
			return attrs, o, nil
		}
		if extra, err := uref.Map(args[1]); err == nil {
			return attrs, Options{Extra: extra}, nil
		}
		return nil, Options{}, fmt.Errorf("%w: options must be Options or a map, got %T", ErrInvalidArgs, args[1])
	case 3:
		if o, ok := asOptions(args[2]); ok {
			return attrs, o, nil
		}
		return nil, Options{}, fmt.Errorf("%w: options must be Options, got %T", ErrInvalidArgs, args[2])
	}
	return nil, Options{}, fmt.Errorf("%w: too many arguments (%d)", ErrInvalidArgs, len(args))
}

func asOptions(v any) (Options, bool) {
	switch o := v.(type) {
	case Options:
		return o, true
	case *Options:
		if o == nil {
			return Options{}, true
		}
		return *o, true
	}
	return Options{}, false
}
