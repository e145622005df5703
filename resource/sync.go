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
	"context"
	"fmt"
)

// Syncer persists plain-data documents addressed by URL.
type Syncer interface {
	// Read returns the document stored at url, or ErrNotFound.
	Read(ctx context.Context, url string) (Attributes, error)
	// List returns the documents stored directly below url, in insertion order.
	List(ctx context.Context, url string) ([]Attributes, error)
	// Create stores doc below url under a new id, written into
	// doc[idAttribute], and returns the stored document.
	Create(ctx context.Context, url, idAttribute string, doc Attributes) (Attributes, error)
	// Update replaces the document at url and returns the stored document.
	Update(ctx context.Context, url string, doc Attributes) (Attributes, error)
	// Delete removes the document at url, or returns ErrNotFound.
	Delete(ctx context.Context, url string) error
}

// Fetch reads the model from s and applies the response through the parse
// and set hooks.
func (m *Model) Fetch(ctx context.Context, s Syncer, opts ...Options) error {
	u, err := m.URL()
	if err != nil {
		return err
	}
	data, err := s.Read(ctx, u)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", u, err)
	}
	return m.apply(data, first(opts))
}

// Save writes the ToJSON form to s, creating the document when the model is
// new, and applies the stored document back.
func (m *Model) Save(ctx context.Context, s Syncer, opts ...Options) error {
	o := first(opts)
	u, err := m.URL()
	if err != nil {
		return err
	}
	doc := m.ToJSON(o)
	var stored Attributes
	if m.IsNew() {
		stored, err = s.Create(ctx, u, m.class.IDAttribute(), doc)
	} else {
		stored, err = s.Update(ctx, u, doc)
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", u, err)
	}
	return m.apply(stored, o)
}

// Destroy deletes the model from s when it has an id, removes it from its
// collection and emits a destroy event.
func (m *Model) Destroy(ctx context.Context, s Syncer, opts ...Options) error {
	o := first(opts)
	if !m.IsNew() {
		u, err := m.URL()
		if err != nil {
			return err
		}
		if err := s.Delete(ctx, u); err != nil {
			return fmt.Errorf("destroy %s: %w", u, err)
		}
	}
	if m.collection != nil {
		m.collection.Remove([]*Model{m}, o)
	}
	if !o.Silent {
		m.events.Emit(Event{Name: EventDestroy, Target: m, Model: m, Options: o})
	}
	return nil
}

func (m *Model) apply(data Attributes, o Options) error {
	o.Parse = true
	parsed, err := m.Parse(data, o)
	if err != nil {
		return err
	}
	return m.Set(parsed, o)
}

// Fetch lists the documents below the collection URL and merges them into
// the members, or replaces them when Options.Reset is set.
func (c *Collection) Fetch(ctx context.Context, s Syncer, opts ...Options) error {
	o := first(opts)
	u, err := c.URL()
	if err != nil {
		return err
	}
	docs, err := s.List(ctx, u)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", u, err)
	}
	items := make([]any, len(docs))
	for i, d := range docs {
		items[i] = map[string]any(d)
	}
	o.Parse = true
	if o.Reset {
		return c.Reset(items, o)
	}
	return c.Set(items, o)
}

// Create builds a member from attrs, saves it and adds it to the collection.
func (c *Collection) Create(ctx context.Context, s Syncer, attrs Attributes, opts ...Options) (*Model, error) {
	o := first(opts)
	m, err := c.class.Model().New(attrs, o.withOwner(c))
	if err != nil {
		return nil, err
	}
	if err := m.Save(ctx, s, o); err != nil {
		return nil, err
	}
	if err := c.Add(m, o); err != nil {
		return nil, err
	}
	return m, nil
}
