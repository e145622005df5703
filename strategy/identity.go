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

import "dirpx.dev/assoc/apis"

// NewAdoptStrategy creates an apis.Strategy that replaces a live child with
// an incoming instance of the declared type.
func NewAdoptStrategy() apis.Strategy { return adoptStrategy{} }

// NewKeepStrategy creates an apis.Strategy that leaves a live child alone
// when the update does not mention its key.
func NewKeepStrategy() apis.Strategy { return keepStrategy{} }

// NewClearStrategy creates an apis.Strategy that lets an explicit nil
// through to the base set, dropping the live child.
func NewClearStrategy() apis.Strategy { return clearStrategy{} }

// NewPassStrategy creates an apis.Strategy that forwards an incoming child
// when storage holds none.
func NewPassStrategy() apis.Strategy { return passStrategy{} }

type (
	adoptStrategy struct{}
	keepStrategy  struct{}
	clearStrategy struct{}
	passStrategy  struct{}
)

// Ensure the identity strategies implement apis.Strategy.
var (
	_ apis.Strategy = adoptStrategy{}
	_ apis.Strategy = keepStrategy{}
	_ apis.Strategy = clearStrategy{}
	_ apis.Strategy = passStrategy{}
)

// TryApply handles child -> child.
func (adoptStrategy) TryApply(s apis.Slot, _ apis.Config) (apis.Outcome, bool, error) {
	if s.CurrentKind() != apis.KindChild || s.IncomingKind() != apis.KindChild {
		return apis.Outcome{}, false, nil
	}
	return apis.Outcome{Action: apis.ActionAdopt, Value: s.Incoming, Handled: true}, true, nil
}

// TryApply handles child -> absent.
func (keepStrategy) TryApply(s apis.Slot, _ apis.Config) (apis.Outcome, bool, error) {
	if s.CurrentKind() != apis.KindChild || s.IncomingKind() != apis.KindAbsent {
		return apis.Outcome{}, false, nil
	}
	return apis.Outcome{Action: apis.ActionKeep, Value: s.Current, Handled: true}, true, nil
}

// TryApply handles child -> nil.
func (clearStrategy) TryApply(s apis.Slot, _ apis.Config) (apis.Outcome, bool, error) {
	if s.CurrentKind() != apis.KindChild || s.IncomingKind() != apis.KindRaw || s.Incoming != nil {
		return apis.Outcome{}, false, nil
	}
	return apis.Outcome{Action: apis.ActionClear}, true, nil
}

// TryApply handles non-child -> child.
func (passStrategy) TryApply(s apis.Slot, _ apis.Config) (apis.Outcome, bool, error) {
	if s.CurrentKind() == apis.KindChild || s.IncomingKind() != apis.KindChild {
		return apis.Outcome{}, false, nil
	}
	return apis.Outcome{Action: apis.ActionPass, Value: s.Incoming}, true, nil
}
