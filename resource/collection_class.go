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
	"sync"

	"dirpx.dev/assoc/internal/naming"
)

// CollectionClass is a collection class: an ordered container type bound to
// a model class.
type CollectionClass struct {
	name     string
	parent   *CollectionClass
	model    *Class
	url      string
	inferURL bool

	mu       sync.RWMutex
	children []*CollectionClass
}

var _ Type = (*CollectionClass)(nil)

// BaseCollection is the root collection class. Its members are Base models.
var BaseCollection = &CollectionClass{name: "Collection", model: Base}

// CollectionOption configures a collection class at Extend time.
type CollectionOption func(*CollectionClass)

// WithModel sets the member class.
func WithModel(c *Class) CollectionOption {
	return func(cc *CollectionClass) { cc.model = c }
}

// WithURL sets the collection path.
func WithURL(u string) CollectionOption {
	return func(cc *CollectionClass) { cc.url = u }
}

// WithInferredURL derives the path from the member class name
// (City -> "/cities").
func WithInferredURL() CollectionOption {
	return func(cc *CollectionClass) { cc.inferURL = true }
}

// Extend creates a collection subclass.
func (cc *CollectionClass) Extend(name string, opts ...CollectionOption) *CollectionClass {
	child := &CollectionClass{name: name, parent: cc}
	for _, opt := range opts {
		if opt != nil {
			opt(child)
		}
	}
	cc.mu.Lock()
	cc.children = append(cc.children, child)
	cc.mu.Unlock()
	return child
}

// Name returns the class name.
func (cc *CollectionClass) Name() string { return cc.name }

// String implements fmt.Stringer.
func (cc *CollectionClass) String() string { return cc.name }

// Parent returns the superclass, nil for BaseCollection.
func (cc *CollectionClass) Parent() *CollectionClass { return cc.parent }

// Subclasses returns the direct subclasses in creation order.
func (cc *CollectionClass) Subclasses() []*CollectionClass {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return append([]*CollectionClass(nil), cc.children...)
}

// Model returns the member class.
func (cc *CollectionClass) Model() *Class {
	for k := cc; k != nil; k = k.parent {
		if k.model != nil {
			return k.model
		}
	}
	return Base
}

// URL returns the explicit or inferred collection path, inherited from the
// nearest ancestor that has one.
func (cc *CollectionClass) URL() string {
	for k := cc; k != nil; k = k.parent {
		if k.url != "" {
			return k.url
		}
		if k.inferURL {
			return naming.URLRoot(k.Model().Name())
		}
	}
	return ""
}

// Is reports whether cc is other or a subclass of it.
func (cc *CollectionClass) Is(other *CollectionClass) bool {
	for k := cc; k != nil; k = k.parent {
		if k == other {
			return true
		}
	}
	return false
}

// IsInstance reports whether v is a *Collection of cc or a subclass.
func (cc *CollectionClass) IsInstance(v any) bool {
	c, ok := v.(*Collection)
	return ok && c != nil && c.class.Is(cc)
}

// Build constructs a collection from raw data: a list of attribute maps or
// models, or nil.
func (cc *CollectionClass) Build(data any, opts Options) (Resource, error) {
	return cc.New(data, opts)
}

// New constructs a collection holding items.
func (cc *CollectionClass) New(items any, opts ...Options) (*Collection, error) {
	c := &Collection{class: cc}
	o := first(opts)
	o.Silent = true
	if err := c.Add(items, o); err != nil {
		return nil, err
	}
	return c, nil
}
