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
	"sort"
	"sync"

	"dirpx.dev/assoc/internal/naming"
	uref "dirpx.dev/assoc/utils/reflect"
)

// Type is anything a relationship can point at: a model class or a
// collection class.
type Type interface {
	// Name returns the class name.
	Name() string
	// IsInstance reports whether v is an instance of the type or of one of
	// its subclasses.
	IsInstance(v any) bool
	// Build constructs a new instance from raw data.
	Build(data any, opts Options) (Resource, error)
}

// URLFunc computes a resource locator on demand.
type URLFunc func() (string, error)

// StaticURL returns a URLFunc that always yields s.
func StaticURL(s string) URLFunc {
	return func() (string, error) { return s, nil }
}

// Resource is the behavior models and collections share.
type Resource interface {
	URL() (string, error)
	SetURLFunc(URLFunc)
	Serialize(opts Options) any
}

// DefaultIDAttribute is the id attribute of Base.
const DefaultIDAttribute = "id"

// Class is a model class. Classes form a single-inheritance tree rooted at
// Base. Each class owns a method table holding its lifecycle hooks, and an
// accessor table.
type Class struct {
	name        string
	parent      *Class
	depth       int
	idAttribute string
	urlRoot     string
	inferURL    bool
	defaults    func() Attributes

	mu        sync.RWMutex
	methods   map[string]any
	accessors map[string]struct{}
	children  []*Class
}

var _ Type = (*Class)(nil)

// Base is the root model class.
var Base = newBase()

func newBase() *Class {
	c := &Class{
		name:        "Model",
		idAttribute: DefaultIDAttribute,
		methods:     make(map[string]any, len(Hooks)),
		accessors:   make(map[string]struct{}),
	}
	c.methods[HookInitialize] = InitializeFunc(baseInitialize)
	c.methods[HookSet] = SetFunc(baseSet)
	c.methods[HookParse] = ParseFunc(baseParse)
	c.methods[HookToJSON] = ToJSONFunc(baseToJSON)
	return c
}

// ClassOption configures a class at Extend time.
type ClassOption func(*Class)

// WithIDAttribute sets the attribute that holds the model id.
func WithIDAttribute(name string) ClassOption {
	return func(c *Class) { c.idAttribute = name }
}

// WithURLRoot sets the collection path models of the class live under.
func WithURLRoot(root string) ClassOption {
	return func(c *Class) { c.urlRoot = root }
}

// WithInferredURLRoot derives the URL root from the class name
// ("Country" -> "/countries").
func WithInferredURLRoot() ClassOption {
	return func(c *Class) { c.inferURL = true }
}

// WithDefaults sets static default attributes. Every instance receives a
// deep copy.
func WithDefaults(d Attributes) ClassOption {
	snapshot := d.DeepClone()
	return func(c *Class) {
		c.defaults = func() Attributes { return snapshot }
	}
}

// WithDefaultsFunc sets a function computing default attributes per instance.
func WithDefaultsFunc(fn func() Attributes) ClassOption {
	return func(c *Class) { c.defaults = fn }
}

// WithInitialize installs an own initialize hook. Extend panics with
// ErrMethodSignature when any hook option is given a nil func.
func WithInitialize(fn InitializeFunc) ClassOption {
	return func(c *Class) { c.setOwn(HookInitialize, fn) }
}

// WithSet installs an own set hook.
func WithSet(fn SetFunc) ClassOption {
	return func(c *Class) { c.setOwn(HookSet, fn) }
}

// WithParse installs an own parse hook.
func WithParse(fn ParseFunc) ClassOption {
	return func(c *Class) { c.setOwn(HookParse, fn) }
}

// WithToJSON installs an own toJSON hook.
func WithToJSON(fn ToJSONFunc) ClassOption {
	return func(c *Class) { c.setOwn(HookToJSON, fn) }
}

// setOwn panics when fn does not fit the slot; hook options are fixed at
// class creation, so a bad one is a programming error.
func (c *Class) setOwn(name string, fn any) {
	v, err := normalizeHook(name, fn)
	if err != nil {
		panic(fmt.Errorf("%s: %w", c.name, err))
	}
	c.methods[name] = v
}

var (
	extendMu  sync.RWMutex
	observers []func(*Class)
)

// OnExtend registers fn to run after every new model class is created.
func OnExtend(fn func(*Class)) {
	if fn == nil {
		return
	}
	extendMu.Lock()
	observers = append(observers, fn)
	extendMu.Unlock()
}

// Extend creates a subclass. Unset id attribute, URL root and defaults are
// inherited; hooks without an own implementation resolve to the parent.
func (c *Class) Extend(name string, opts ...ClassOption) *Class {
	child := &Class{
		name:      name,
		parent:    c,
		depth:     c.depth + 1,
		methods:   make(map[string]any),
		accessors: make(map[string]struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(child)
		}
	}

	c.mu.Lock()
	c.children = append(c.children, child)
	c.mu.Unlock()

	extendMu.RLock()
	fns := append([]func(*Class){}, observers...)
	extendMu.RUnlock()
	for _, fn := range fns {
		fn(child)
	}
	return child
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// String implements fmt.Stringer.
func (c *Class) String() string { return c.name }

// Parent returns the superclass, nil for Base.
func (c *Class) Parent() *Class { return c.parent }

// Depth returns the distance to Base.
func (c *Class) Depth() int { return c.depth }

// Is reports whether c is other or a subclass of it.
func (c *Class) Is(other *Class) bool {
	for k := c; k != nil; k = k.parent {
		if k == other {
			return true
		}
	}
	return false
}

// Subclasses returns the direct subclasses in creation order.
func (c *Class) Subclasses() []*Class {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*Class(nil), c.children...)
}

// IDAttribute returns the attribute holding the model id.
func (c *Class) IDAttribute() string {
	for k := c; k != nil; k = k.parent {
		if k.idAttribute != "" {
			return k.idAttribute
		}
	}
	return DefaultIDAttribute
}

// URLRoot returns the explicit or inferred URL root, inherited from the
// nearest ancestor that has one.
func (c *Class) URLRoot() string {
	for k := c; k != nil; k = k.parent {
		if k.urlRoot != "" {
			return k.urlRoot
		}
		if k.inferURL {
			return naming.URLRoot(k.name)
		}
	}
	return ""
}

// Defaults returns a fresh deep copy of the class defaults.
func (c *Class) Defaults() Attributes {
	for k := c; k != nil; k = k.parent {
		if k.defaults != nil {
			d := k.defaults()
			if d == nil {
				return Attributes{}
			}
			return d.DeepClone()
		}
	}
	return Attributes{}
}

// OwnMethod returns the method stored on c itself.
func (c *Class) OwnMethod(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.methods[name]
	return v, ok
}

// LookupMethod resolves name through the class chain.
func (c *Class) LookupMethod(name string) (any, bool) {
	for k := c; k != nil; k = k.parent {
		if v, ok := k.OwnMethod(name); ok {
			return v, true
		}
	}
	return nil, false
}

// Super resolves name starting at the parent class. Hooks use it to
// delegate to the inherited implementation.
func (c *Class) Super(name string) (any, bool) {
	if c.parent == nil {
		return nil, false
	}
	return c.parent.LookupMethod(name)
}

// SetMethod stores fn as c's own method. A nil fn removes the own method so
// lookups fall through to the parent. Known hook slots require the matching
// func type.
func (c *Class) SetMethod(name string, fn any) error {
	if fn == nil {
		c.mu.Lock()
		delete(c.methods, name)
		c.mu.Unlock()
		return nil
	}
	v, err := normalizeHook(name, fn)
	if err != nil {
		return fmt.Errorf("%s: %w", c.name, err)
	}
	c.mu.Lock()
	c.methods[name] = v
	c.mu.Unlock()
	return nil
}

// DefineAccessor records an accessor for key on c.
func (c *Class) DefineAccessor(key string) {
	c.mu.Lock()
	c.accessors[key] = struct{}{}
	c.mu.Unlock()
}

// RemoveAccessor drops c's own accessor for key.
func (c *Class) RemoveAccessor(key string) {
	c.mu.Lock()
	delete(c.accessors, key)
	c.mu.Unlock()
}

// OwnAccessors returns the keys with an accessor defined on c itself.
func (c *Class) OwnAccessors() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.accessors))
	for k := range c.accessors {
		keys = append(keys, k)
	}
	c.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// HasAccessor reports whether key has an accessor on c or an ancestor.
func (c *Class) HasAccessor(key string) bool {
	for k := c; k != nil; k = k.parent {
		k.mu.RLock()
		_, ok := k.accessors[key]
		k.mu.RUnlock()
		if ok {
			return true
		}
	}
	return false
}

// IsInstance reports whether v is a *Model of c or a subclass.
func (c *Class) IsInstance(v any) bool {
	m, ok := v.(*Model)
	return ok && m != nil && m.class.Is(c)
}

// Build constructs a model from raw data, which must be a string-keyed map
// or nil.
func (c *Class) Build(data any, opts Options) (Resource, error) {
	attrs, err := uref.Map(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s expects an object, got %T", ErrInvalidData, c.name, data)
	}
	return c.New(Attributes(attrs), opts)
}

// New constructs a model. With Options.Parse the data goes through the parse
// hook first; defaults fill keys the data does not carry; the result is
// written through the set hook and the initialize hook runs last.
func (c *Class) New(attrs Attributes, opts ...Options) (*Model, error) {
	o := first(opts)
	m := &Model{
		class:      c,
		cid:        newCID(),
		attrs:      make(Attributes),
		collection: o.owner,
	}
	data := attrs.Clone()
	if o.Parse {
		parsed, err := m.Parse(data, o)
		if err != nil {
			return nil, err
		}
		data = parsed
	}
	data = Merge(c.Defaults(), data)
	if err := m.Set(data, o); err != nil {
		return nil, err
	}
	init := lookupHook[InitializeFunc](c, HookInitialize, baseInitialize)
	if err := init(m, attrs, o); err != nil {
		return nil, err
	}
	return m, nil
}
