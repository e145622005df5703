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

import "sync"

// Event names emitted by models and collections.
const (
	EventChange  = "change"
	EventAdd     = "add"
	EventRemove  = "remove"
	EventUpdate  = "update"
	EventReset   = "reset"
	EventDestroy = "destroy"
)

// ChangeEvent returns the per-key change event name, "change:<key>".
func ChangeEvent(key string) string { return EventChange + ":" + key }

// Event is delivered to handlers.
type Event struct {
	Name    string
	Target  any
	Model   *Model
	Key     string
	Value   any
	Options Options
}

// Handler receives events.
type Handler func(Event)

type subscription struct {
	id   uint64
	name string
	fn   Handler
}

// Events is a minimal ordered emitter. Handlers run synchronously in
// registration order.
type Events struct {
	mu   sync.Mutex
	next uint64
	subs []subscription
}

// On registers fn for the named event and returns a function that
// removes the registration.
func (e *Events) On(name string, fn Handler) (off func()) {
	if fn == nil {
		return func() {}
	}
	e.mu.Lock()
	e.next++
	id := e.next
	e.subs = append(e.subs, subscription{id: id, name: name, fn: fn})
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers ev to every handler registered for ev.Name.
func (e *Events) Emit(ev Event) {
	e.mu.Lock()
	var fns []Handler
	for _, s := range e.subs {
		if s.name == ev.Name {
			fns = append(fns, s.fn)
		}
	}
	e.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}
