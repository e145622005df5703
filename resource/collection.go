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
	"encoding/json"
	"fmt"

	uref "dirpx.dev/assoc/utils/reflect"
)

// Collection is an ordered set of models. Members are identified by id or
// client id. A collection is single-owner, like Model.
type Collection struct {
	class   *CollectionClass
	models  []*Model
	urlFunc URLFunc
	events  Events
}

var _ Resource = (*Collection)(nil)

// Class returns the collection class.
func (c *Collection) Class() *CollectionClass { return c.class }

// Len returns the number of members.
func (c *Collection) Len() int { return len(c.models) }

// At returns the member at index i, or nil when out of range.
func (c *Collection) At(i int) *Model {
	if i < 0 || i >= len(c.models) {
		return nil
	}
	return c.models[i]
}

// Models returns the members in order.
func (c *Collection) Models() []*Model { return append([]*Model(nil), c.models...) }

// First returns the first member, or nil.
func (c *Collection) First() *Model { return c.At(0) }

// Last returns the last member, or nil.
func (c *Collection) Last() *Model { return c.At(len(c.models) - 1) }

// Get finds a member by model pointer, id or client id.
func (c *Collection) Get(ref any) *Model {
	if ref == nil {
		return nil
	}
	if m, ok := ref.(*Model); ok {
		for _, x := range c.models {
			if x == m {
				return x
			}
		}
		if id, ok := m.ID(); ok {
			return c.Get(id)
		}
		return nil
	}
	key := fmt.Sprint(ref)
	for _, x := range c.models {
		if x.cid == key {
			return x
		}
		if id, ok := x.ID(); ok && id == key {
			return x
		}
	}
	return nil
}

// Add appends items that are not members yet. Items already present (by
// id) are left untouched.
func (c *Collection) Add(items any, opts ...Options) error {
	o := first(opts)
	list, err := c.normalize(items)
	if err != nil {
		return err
	}
	var added []*Model
	for _, item := range list {
		if c.existing(item) != nil {
			continue
		}
		m, err := c.prepare(item, o)
		if err != nil {
			return err
		}
		c.models = append(c.models, m)
		added = append(added, m)
	}
	c.notify(added, nil, o)
	return nil
}

// Remove drops the given members and detaches them from the collection.
// It returns how many were removed.
func (c *Collection) Remove(models []*Model, opts ...Options) int {
	o := first(opts)
	drop := make(map[*Model]bool, len(models))
	for _, m := range models {
		if x := c.Get(m); x != nil {
			drop[x] = true
		}
	}
	if len(drop) == 0 {
		return 0
	}
	var removed []*Model
	kept := c.models[:0:0]
	for _, m := range c.models {
		if drop[m] {
			removed = append(removed, m)
			if m.collection == c {
				m.collection = nil
			}
			continue
		}
		kept = append(kept, m)
	}
	c.models = kept
	c.notify(nil, removed, o)
	return len(removed)
}

// Set reconciles the members with items: existing members (matched by id)
// are updated in place through their set hook, new ones are added and,
// unless Options.KeepMissing is set, members absent from items are removed.
func (c *Collection) Set(items any, opts ...Options) error {
	o := first(opts)
	list, err := c.normalize(items)
	if err != nil {
		return err
	}
	seen := make(map[*Model]bool, len(list))
	var added []*Model
	for _, item := range list {
		if m := c.existing(item); m != nil {
			seen[m] = true
			if err := c.merge(m, item, o); err != nil {
				return err
			}
			continue
		}
		m, err := c.prepare(item, o)
		if err != nil {
			return err
		}
		c.models = append(c.models, m)
		seen[m] = true
		added = append(added, m)
	}
	var removed []*Model
	if !o.KeepMissing {
		kept := c.models[:0:0]
		for _, m := range c.models {
			if seen[m] {
				kept = append(kept, m)
				continue
			}
			if m.collection == c {
				m.collection = nil
			}
			removed = append(removed, m)
		}
		c.models = kept
	}
	c.notify(added, removed, o)
	return nil
}

// Reset replaces every member with items and emits a single reset event.
func (c *Collection) Reset(items any, opts ...Options) error {
	o := first(opts)
	list, err := c.normalize(items)
	if err != nil {
		return err
	}
	models := make([]*Model, 0, len(list))
	for _, item := range list {
		m, err := c.prepare(item, o)
		if err != nil {
			return err
		}
		models = append(models, m)
	}
	for _, m := range c.models {
		if m.collection == c {
			m.collection = nil
		}
	}
	for _, m := range models {
		if m.collection == nil {
			m.collection = c
		}
	}
	c.models = models
	if !o.Silent {
		c.events.Emit(Event{Name: EventReset, Target: c, Options: o})
	}
	return nil
}

// ToJSON returns the plain-data form of every member.
func (c *Collection) ToJSON(opts ...Options) []Attributes {
	o := first(opts)
	out := make([]Attributes, len(c.models))
	for i, m := range c.models {
		out[i] = m.ToJSON(o)
	}
	return out
}

// Serialize implements Resource.
func (c *Collection) Serialize(opts Options) any { return c.ToJSON(opts) }

// MarshalJSON encodes the ToJSON form.
func (c *Collection) MarshalJSON() ([]byte, error) { return json.Marshal(c.ToJSON()) }

// URL returns the explicit URL function result or the class URL.
func (c *Collection) URL() (string, error) {
	if c.urlFunc != nil {
		return c.urlFunc()
	}
	if u := c.class.URL(); u != "" {
		return u, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNoURL, c.class.name)
}

// SetURLFunc overrides the locator. A nil fn restores the class URL.
func (c *Collection) SetURLFunc(fn URLFunc) { c.urlFunc = fn }

// On registers an event handler on the collection.
func (c *Collection) On(name string, fn Handler) (off func()) { return c.events.On(name, fn) }

// normalize turns items into a list. A single map or model counts as a
// one-element list.
func (c *Collection) normalize(items any) ([]any, error) {
	switch v := items.(type) {
	case nil:
		return nil, nil
	case *Model:
		return []any{v}, nil
	case []*Model:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out, nil
	}
	list, err := uref.List(items)
	if err == nil {
		return list, nil
	}
	if m, merr := uref.Map(items); merr == nil {
		return []any{m}, nil
	}
	return nil, fmt.Errorf("%w: %s expects a list, got %T", ErrInvalidData, c.class.name, items)
}

// existing returns the member item refers to, matched by pointer or id.
func (c *Collection) existing(item any) *Model {
	if m, ok := item.(*Model); ok {
		return c.Get(m)
	}
	attrs, err := uref.Map(item)
	if err != nil {
		return nil
	}
	v, ok := attrs[c.class.Model().IDAttribute()]
	if !ok || v == nil {
		return nil
	}
	key := fmt.Sprint(v)
	for _, m := range c.models {
		if id, ok := m.ID(); ok && id == key {
			return m
		}
	}
	return nil
}

// prepare turns item into a model owned by c.
func (c *Collection) prepare(item any, o Options) (*Model, error) {
	if m, ok := item.(*Model); ok {
		if m == nil {
			return nil, fmt.Errorf("%w: nil model in %s", ErrInvalidData, c.class.name)
		}
		if m.collection == nil {
			m.collection = c
		}
		return m, nil
	}
	attrs, err := uref.Map(item)
	if err != nil {
		return nil, fmt.Errorf("%w: %s member must be an object, got %T", ErrInvalidData, c.class.name, item)
	}
	return c.class.Model().New(Attributes(attrs), o.withOwner(c))
}

// merge updates member m from item.
func (c *Collection) merge(m *Model, item any, o Options) error {
	if x, ok := item.(*Model); ok {
		if x == m {
			return nil
		}
		return m.Set(x.Attributes(), o)
	}
	attrs, err := uref.Map(item)
	if err != nil {
		return fmt.Errorf("%w: %s member must be an object, got %T", ErrInvalidData, c.class.name, item)
	}
	data := Attributes(attrs).Clone()
	if o.Parse {
		if data, err = m.Parse(data, o); err != nil {
			return err
		}
	}
	return m.Set(data, o)
}

func (c *Collection) notify(added, removed []*Model, o Options) {
	if o.Silent || (len(added) == 0 && len(removed) == 0) {
		return
	}
	for _, m := range removed {
		c.events.Emit(Event{Name: EventRemove, Target: c, Model: m, Options: o})
	}
	for _, m := range added {
		c.events.Emit(Event{Name: EventAdd, Target: c, Model: m, Options: o})
	}
	c.events.Emit(Event{Name: EventUpdate, Target: c, Options: o})
}
