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

package apis

import "dirpx.dev/assoc/resource"

// Kind classifies a relationship value.
type Kind uint8

const (
	// KindAbsent is a missing key (incoming) or an empty slot (current).
	KindAbsent Kind = iota
	// KindRaw is plain data, including an explicit nil.
	KindRaw
	// KindChild is an instance of the declared type.
	KindChild
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindRaw:
		return "raw"
	case KindChild:
		return "child"
	}
	return "unknown"
}

// Action is what the update chain decided for one slot.
type Action uint8

const (
	// ActionKeep leaves the current child alone.
	ActionKeep Action = iota
	// ActionAdopt stores the incoming child in place of the current one.
	ActionAdopt
	// ActionClear passes an explicit nil through to the base set.
	ActionClear
	// ActionMerge updated the current model child in place.
	ActionMerge
	// ActionUpsert merged incoming members into the current collection child.
	ActionUpsert
	// ActionReset replaced the members of the current collection child.
	ActionReset
	// ActionPass forwards an incoming child unchanged.
	ActionPass
	// ActionBuild constructed a new child from incoming data.
	ActionBuild
)

var actionNames = [...]string{"keep", "adopt", "clear", "merge", "upsert", "reset", "pass", "build"}

// String implements fmt.Stringer.
func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Slot is one declared key of one model during a lifecycle call.
type Slot struct {
	// Owner is the model being updated.
	Owner *resource.Model
	// Key is the relationship key.
	Key string
	// Descriptor is the effective descriptor for Key.
	Descriptor Descriptor
	// Current is the value in storage.
	Current any
	// Incoming is the value in the update.
	Incoming any
	// Present reports whether the update carries Key at all.
	Present bool
	// Options are the options of the lifecycle call.
	Options resource.Options
}

// CurrentKind classifies Current.
func (s Slot) CurrentKind() Kind {
	switch {
	case s.Current == nil:
		return KindAbsent
	case s.Descriptor.Type != nil && s.Descriptor.Type.IsInstance(s.Current):
		return KindChild
	default:
		return KindRaw
	}
}

// IncomingKind classifies Incoming.
func (s Slot) IncomingKind() Kind {
	switch {
	case !s.Present:
		return KindAbsent
	case s.Incoming != nil && s.Descriptor.Type != nil && s.Descriptor.Type.IsInstance(s.Incoming):
		return KindChild
	default:
		return KindRaw
	}
}

// Outcome is the decision for a slot.
type Outcome struct {
	// Action names the decision.
	Action Action
	// Value is what the slot passes on: the built child, the adopted child,
	// or the incoming value.
	Value any
	// Handled reports that the slot was fully dealt with and the key must
	// not reach the base set.
	Handled bool
}

// Strategy is a pluggable update step. An Updater chains several strategies
// in order; the first that matches wins.
type Strategy interface {
	// TryApply returns (outcome, true, nil) if it handled s, (zero, false, nil)
	// to fall through, or an error that aborts the whole call.
	TryApply(s Slot, cfg Config) (Outcome, bool, error)
}

// Updater decides every slot.
type Updater interface {
	// Apply returns the outcome for s or an error when no strategy matched
	// or a strategy failed.
	Apply(s Slot, cfg Config) (Outcome, error)
}
