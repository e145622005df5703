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
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Model is an attribute-bag entity. A model is single-owner: it must not be
// mutated from several goroutines at once.
type Model struct {
	class      *Class
	cid        string
	attrs      Attributes
	collection *Collection
	urlFunc    URLFunc
	events     Events
}

var _ Resource = (*Model)(nil)

func newCID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Class returns the model's class.
func (m *Model) Class() *Class { return m.class }

// CID returns the client id, unique per process.
func (m *Model) CID() string { return m.cid }

// ID returns the id attribute rendered as a string.
func (m *Model) ID() (string, bool) {
	v, ok := m.attrs[m.class.IDAttribute()]
	if !ok || v == nil {
		return "", false
	}
	return fmt.Sprint(v), true
}

// IsNew reports whether the model has no id yet.
func (m *Model) IsNew() bool {
	_, ok := m.ID()
	return !ok
}

// Get returns the stored value for key.
func (m *Model) Get(key string) any { return m.attrs[key] }

// Has reports whether key holds a non-nil value.
func (m *Model) Has(key string) bool { return m.attrs.Has(key) }

// Attributes returns a shallow copy of the stored attributes.
func (m *Model) Attributes() Attributes { return m.attrs.Clone() }

// Set writes attrs through the class set hook.
func (m *Model) Set(attrs Attributes, opts ...Options) error {
	fn := lookupHook[SetFunc](m.class, HookSet, baseSet)
	return fn(m, attrs, first(opts))
}

// SetKey is Set for a single key.
func (m *Model) SetKey(key string, value any, opts ...Options) error {
	return m.Set(Attributes{key: value}, opts...)
}

// Assign accepts the loose argument forms of SetArgs and forwards them to Set.
func (m *Model) Assign(args ...any) error {
	attrs, opts, err := SetArgs(args...)
	if err != nil {
		return err
	}
	return m.Set(attrs, opts)
}

// Unset removes key from storage without running the set hook.
func (m *Model) Unset(key string, opts ...Options) {
	if _, ok := m.attrs[key]; !ok {
		return
	}
	delete(m.attrs, key)
	o := first(opts)
	if o.Silent {
		return
	}
	m.events.Emit(Event{Name: ChangeEvent(key), Target: m, Model: m, Key: key, Options: o})
	m.events.Emit(Event{Name: EventChange, Target: m, Model: m, Options: o})
}

// Replace writes value straight into storage, bypassing hooks and events.
func (m *Model) Replace(key string, value any) { m.attrs[key] = value }

// Parse runs data through the class parse hook.
func (m *Model) Parse(data Attributes, opts ...Options) (Attributes, error) {
	fn := lookupHook[ParseFunc](m.class, HookParse, baseParse)
	out, err := fn(m, data, first(opts))
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = Attributes{}
	}
	return out, nil
}

// ToJSON returns the plain-data form through the class toJSON hook.
func (m *Model) ToJSON(opts ...Options) Attributes {
	fn := lookupHook[ToJSONFunc](m.class, HookToJSON, baseToJSON)
	return fn(m, first(opts))
}

// Serialize implements Resource.
func (m *Model) Serialize(opts Options) any { return m.ToJSON(opts) }

// MarshalJSON encodes the ToJSON form.
func (m *Model) MarshalJSON() ([]byte, error) { return json.Marshal(m.ToJSON()) }

// URL returns the model locator. An explicit URL function wins; otherwise
// the base is the class URL root or the owning collection's URL, with the
// escaped id appended once the model has one.
func (m *Model) URL() (string, error) {
	if m.urlFunc != nil {
		return m.urlFunc()
	}
	base := m.class.URLRoot()
	if base == "" && m.collection != nil {
		u, err := m.collection.URL()
		if err != nil {
			return "", err
		}
		base = u
	}
	if base == "" {
		return "", fmt.Errorf("%w: %s", ErrNoURL, m.class.name)
	}
	id, ok := m.ID()
	if !ok {
		return base, nil
	}
	return strings.TrimSuffix(base, "/") + "/" + url.PathEscape(id), nil
}

// SetURLFunc overrides the locator. A nil fn restores the derived one.
func (m *Model) SetURLFunc(fn URLFunc) { m.urlFunc = fn }

// Collection returns the collection the model belongs to, if any.
func (m *Model) Collection() *Collection { return m.collection }

// On registers an event handler on the model.
func (m *Model) On(name string, fn Handler) (off func()) { return m.events.On(name, fn) }

// Accessor returns a getter bound to key when the class defines an accessor
// for it.
func (m *Model) Accessor(key string) (func() any, bool) {
	if !m.class.HasAccessor(key) {
		return nil, false
	}
	return func() any { return m.Get(key) }, true
}

// Child returns the model stored under key, or nil.
func (m *Model) Child(key string) *Model {
	c, _ := m.attrs[key].(*Model)
	return c
}

// Children returns the collection stored under key, or nil.
func (m *Model) Children(key string) *Collection {
	c, _ := m.attrs[key].(*Collection)
	return c
}

// String implements fmt.Stringer.
func (m *Model) String() string {
	if id, ok := m.ID(); ok {
		return m.class.name + "(" + id + ")"
	}
	return m.class.name + "(" + m.cid + ")"
}
