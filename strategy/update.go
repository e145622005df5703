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

package strategy

import (
	"errors"
	"fmt"

	"dirpx.dev/assoc/apis"
	"dirpx.dev/assoc/resource"
)

// NewMergeStrategy creates an apis.Strategy that updates a live model child
// in place from raw attributes.
func NewMergeStrategy() apis.Strategy { return mergeStrategy{} }

// NewCollectionStrategy creates an apis.Strategy that updates a live
// collection child from a raw list, merging members by id or replacing them
// when the descriptor asks for Reset.
func NewCollectionStrategy() apis.Strategy { return collectionStrategy{} }

type (
	mergeStrategy      struct{}
	collectionStrategy struct{}
)

// Ensure the in-place strategies implement apis.Strategy.
var (
	_ apis.Strategy = mergeStrategy{}
	_ apis.Strategy = collectionStrategy{}
)

// TryApply handles model child -> raw.
func (mergeStrategy) TryApply(s apis.Slot, _ apis.Config) (apis.Outcome, bool, error) {
	if s.CurrentKind() != apis.KindChild || s.IncomingKind() != apis.KindRaw {
		return apis.Outcome{}, false, nil
	}
	child, ok := s.Current.(*resource.Model)
	if !ok {
		return apis.Outcome{}, false, nil
	}
	attrs, err := resource.AsAttributes(s.Incoming)
	if err != nil {
		return apis.Outcome{}, false, incompatible(s, err)
	}
	if err := child.Set(attrs, s.Options.Nested()); err != nil {
		return apis.Outcome{}, false, err
	}
	return apis.Outcome{Action: apis.ActionMerge, Value: child, Handled: true}, true, nil
}

// TryApply handles collection child -> raw.
func (collectionStrategy) TryApply(s apis.Slot, _ apis.Config) (apis.Outcome, bool, error) {
	if s.CurrentKind() != apis.KindChild || s.IncomingKind() != apis.KindRaw {
		return apis.Outcome{}, false, nil
	}
	child, ok := s.Current.(*resource.Collection)
	if !ok {
		return apis.Outcome{}, false, nil
	}
	action, apply := apis.ActionUpsert, child.Set
	if s.Descriptor.Reset {
		action, apply = apis.ActionReset, child.Reset
	}
	if err := apply(s.Incoming, s.Options.Nested()); err != nil {
		if errors.Is(err, resource.ErrInvalidData) {
			return apis.Outcome{}, false, incompatible(s, err)
		}
		return apis.Outcome{}, false, err
	}
	return apis.Outcome{Action: action, Value: child, Handled: true}, true, nil
}

func incompatible(s apis.Slot, err error) error {
	return fmt.Errorf("%w: %s given for %s: %w", apis.ErrIncompatibleValue, typeName(s.Incoming), s.Descriptor.Type.Name(), err)
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
