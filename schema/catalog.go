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

package schema

import (
	"fmt"
	"sort"

	"dirpx.dev/assoc/apis"
	"dirpx.dev/assoc/resource"
)

// DeclareFunc declares relationships on a class; assoc.Declare satisfies it.
type DeclareFunc func(c *resource.Class, rels apis.Relationships) error

// Catalog holds the classes built from a File.
type Catalog struct {
	classes     map[string]*resource.Class
	collections map[string]*resource.CollectionClass
	order       []string
	rels        map[string]apis.Relationships
}

// Build creates the classes of f, parents before children, and collects
// the relationships per class. Nothing is declared yet; see Apply.
func Build(f *File) (*Catalog, error) {
	b := &catalogBuilder{
		f:        f,
		classDef: make(map[string]ClassDef, len(f.Classes)),
		collDef:  make(map[string]CollectionDef, len(f.Collections)),
		visiting: make(map[string]bool),
		cat: &Catalog{
			classes:     make(map[string]*resource.Class),
			collections: make(map[string]*resource.CollectionClass),
			rels:        make(map[string]apis.Relationships),
		},
	}
	if err := b.index(); err != nil {
		return nil, err
	}
	for _, d := range f.Classes {
		if _, err := b.class(d.Name); err != nil {
			return nil, err
		}
	}
	for _, d := range f.Collections {
		if _, err := b.collection(d.Name); err != nil {
			return nil, err
		}
	}
	if err := b.relationships(); err != nil {
		return nil, err
	}
	return b.cat, nil
}

// Class returns the model class named name.
func (c *Catalog) Class(name string) (*resource.Class, bool) {
	cl, ok := c.classes[name]
	return cl, ok
}

// Collection returns the collection class named name.
func (c *Catalog) Collection(name string) (*resource.CollectionClass, bool) {
	cc, ok := c.collections[name]
	return cc, ok
}

// Type returns the model or collection class named name.
func (c *Catalog) Type(name string) (resource.Type, bool) {
	if cl, ok := c.classes[name]; ok {
		return cl, true
	}
	if cc, ok := c.collections[name]; ok {
		return cc, true
	}
	return nil, false
}

// Classes returns the model class names, parents first.
func (c *Catalog) Classes() []string {
	return append([]string(nil), c.order...)
}

// Collections returns the collection class names in lexical order.
func (c *Catalog) Collections() []string {
	names := make([]string, 0, len(c.collections))
	for n := range c.collections {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Relationships returns a copy of the relationships declared for the class
// named name.
func (c *Catalog) Relationships(name string) apis.Relationships {
	rels := c.rels[name]
	if rels == nil {
		return nil
	}
	return apis.Relationships(apis.Table(rels).Clone())
}

// Apply declares every class's relationships through declare, parents
// first. It stops at the first error.
func (c *Catalog) Apply(declare DeclareFunc) error {
	for _, name := range c.order {
		rels, ok := c.rels[name]
		if !ok {
			continue
		}
		if err := declare(c.classes[name], rels); err != nil {
			return fmt.Errorf("schema: declare %s: %w", name, err)
		}
	}
	return nil
}

type catalogBuilder struct {
	f        *File
	classDef map[string]ClassDef
	collDef  map[string]CollectionDef
	visiting map[string]bool
	cat      *Catalog
}

func (b *catalogBuilder) index() error {
	for _, d := range b.f.Classes {
		if d.Name == "" {
			return fmt.Errorf("%w: class without name", ErrInvalid)
		}
		if _, dup := b.classDef[d.Name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateName, d.Name)
		}
		b.classDef[d.Name] = d
	}
	for _, d := range b.f.Collections {
		if d.Name == "" {
			return fmt.Errorf("%w: collection without name", ErrInvalid)
		}
		_, dupClass := b.classDef[d.Name]
		_, dupColl := b.collDef[d.Name]
		if dupClass || dupColl {
			return fmt.Errorf("%w: %s", ErrDuplicateName, d.Name)
		}
		b.collDef[d.Name] = d
	}
	return nil
}

func (b *catalogBuilder) class(name string) (*resource.Class, error) {
	if c, ok := b.cat.classes[name]; ok {
		return c, nil
	}
	d, ok := b.classDef[name]
	if !ok {
		return nil, fmt.Errorf("%w: class %s", ErrUnknownName, name)
	}
	if b.visiting[name] {
		return nil, fmt.Errorf("%w: %s", ErrCycle, name)
	}
	b.visiting[name] = true
	defer delete(b.visiting, name)

	parent := resource.Base
	if d.Extends != "" {
		p, err := b.class(d.Extends)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", name, err)
		}
		parent = p
	}

	var opts []resource.ClassOption
	if d.IDAttribute != "" {
		opts = append(opts, resource.WithIDAttribute(d.IDAttribute))
	}
	if d.URLRoot != "" {
		opts = append(opts, resource.WithURLRoot(d.URLRoot))
	}
	if d.InferURLRoot {
		opts = append(opts, resource.WithInferredURLRoot())
	}
	if len(d.Defaults) > 0 {
		opts = append(opts, resource.WithDefaults(resource.Attributes(d.Defaults)))
	}

	c := parent.Extend(name, opts...)
	b.cat.classes[name] = c
	b.cat.order = append(b.cat.order, name)
	return c, nil
}

func (b *catalogBuilder) collection(name string) (*resource.CollectionClass, error) {
	if c, ok := b.cat.collections[name]; ok {
		return c, nil
	}
	d, ok := b.collDef[name]
	if !ok {
		return nil, fmt.Errorf("%w: collection %s", ErrUnknownName, name)
	}
	if b.visiting[name] {
		return nil, fmt.Errorf("%w: %s", ErrCycle, name)
	}
	b.visiting[name] = true
	defer delete(b.visiting, name)

	parent := resource.BaseCollection
	if d.Extends != "" {
		p, err := b.collection(d.Extends)
		if err != nil {
			return nil, fmt.Errorf("collection %s: %w", name, err)
		}
		parent = p
	}

	var opts []resource.CollectionOption
	if d.Model != "" {
		m, err := b.class(d.Model)
		if err != nil {
			return nil, fmt.Errorf("collection %s: %w", name, err)
		}
		opts = append(opts, resource.WithModel(m))
	}
	if d.URL != "" {
		opts = append(opts, resource.WithURL(d.URL))
	}
	if d.InferURL {
		opts = append(opts, resource.WithInferredURL())
	}

	c := parent.Extend(name, opts...)
	b.cat.collections[name] = c
	return c, nil
}

func (b *catalogBuilder) relationships() error {
	for i, r := range b.f.Relationships {
		if r.Class == "" || r.Key == "" || r.Type == "" {
			return fmt.Errorf("%w: relationship #%d needs class, key and type", ErrInvalid, i+1)
		}
		if _, ok := b.cat.classes[r.Class]; !ok {
			return fmt.Errorf("%w: relationship class %s", ErrUnknownName, r.Class)
		}
		t, ok := b.cat.Type(r.Type)
		if !ok {
			return fmt.Errorf("%w: relationship type %s", ErrUnknownName, r.Type)
		}
		d := apis.Descriptor{Type: t, Reset: r.Reset}
		if r.URL != "" {
			d.URL = apis.URL(r.URL)
		}
		rels := b.cat.rels[r.Class]
		if rels == nil {
			rels = make(apis.Relationships)
			b.cat.rels[r.Class] = rels
		}
		if _, dup := rels[r.Key]; dup {
			return fmt.Errorf("%w: %s.%s", ErrDuplicateName, r.Class, r.Key)
		}
		rels[r.Key] = d
	}
	return nil
}
