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

package resolver

import (
	"fmt"

	"dirpx.dev/assoc/apis"
)

// NewChain constructs an apis.Updater that tries the given strategies in order.
// Nil strategies are ignored. The returned updater is safe for concurrent use
// provided strategies themselves are safe for concurrent TryApply calls.
func NewChain(strategies ...apis.Strategy) apis.Updater {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out}
}

// chain is an immutable, order-preserving updater over a set of strategies.
type chain struct {
	strats []apis.Strategy
}

// Apply runs strategies in order until one handles the slot.
func (r chain) Apply(s apis.Slot, cfg apis.Config) (apis.Outcome, error) {
	for _, st := range r.strats {
		out, ok, err := st.TryApply(s, cfg)
		if err != nil {
			return apis.Outcome{}, err
		}
		if ok {
			return out, nil
		}
	}
	return apis.Outcome{}, fmt.Errorf("%w: %s (current %v, incoming %v)", apis.ErrNoStrategy, s.Key, s.CurrentKind(), s.IncomingKind())
}
