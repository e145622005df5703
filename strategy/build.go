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

// NewBuildStrategy creates an apis.Strategy that constructs a new child from
// raw or absent data and, when the descriptor carries a URL rule, derives
// the child's URL from its owner's.
func NewBuildStrategy() apis.Strategy { return buildStrategy{} }

type buildStrategy struct{}

// Ensure buildStrategy implements apis.Strategy.
var _ apis.Strategy = buildStrategy{}

// TryApply handles non-child -> raw or absent.
func (buildStrategy) TryApply(s apis.Slot, cfg apis.Config) (apis.Outcome, bool, error) {
	if s.CurrentKind() == apis.KindChild || s.IncomingKind() == apis.KindChild {
		return apis.Outcome{}, false, nil
	}
	if s.Descriptor.Type == nil {
		return apis.Outcome{}, false, apis.ErrNilType
	}
	if s.Options.Depth() >= cfg.MaxDepth {
		return apis.Outcome{}, false, fmt.Errorf("%w: %d building %s", apis.ErrMaxDepth, cfg.MaxDepth, s.Descriptor.Type.Name())
	}

	var data any
	if s.Present {
		data = s.Incoming
	}
	child, err := s.Descriptor.Type.Build(data, s.Options.Nested())
	if err != nil {
		if errors.Is(err, resource.ErrInvalidData) {
			return apis.Outcome{}, false, incompatible(s, err)
		}
		return apis.Outcome{}, false, err
	}
	if rule := s.Descriptor.URL; rule != nil && s.Owner != nil {
		owner := s.Owner
		child.SetURLFunc(func() (string, error) {
			base, err := owner.URL()
			if err != nil {
				return "", err
			}
			return base + rule.ResolveURL(), nil
		})
	}
	return apis.Outcome{Action: apis.ActionBuild, Value: child}, true, nil
}
