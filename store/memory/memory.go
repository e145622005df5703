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

// Package memory is an in-process document store implementing
// resource.Syncer. Documents are deep-copied on the way in and out.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"dirpx.dev/assoc/resource"
	"dirpx.dev/assoc/store"
	uref "dirpx.dev/assoc/utils/reflect"
)

type entry struct {
	parent string
	seq    uint64
	doc    resource.Attributes
}

// Store is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	docs  map[string]entry
	seq   uint64
	newID store.IDGenerator
}

var _ resource.Syncer = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the UUID v7 id generator.
func WithIDGenerator(fn store.IDGenerator) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{docs: make(map[string]entry), newID: store.NewID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Read implements resource.Syncer.
func (s *Store) Read(_ context.Context, url string) (resource.Attributes, error) {
	u := store.Clean(url)
	s.mu.RLock()
	e, ok := s.docs[u]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", resource.ErrNotFound, u)
	}
	return copyDoc(e.doc), nil
}

// List implements resource.Syncer.
func (s *Store) List(_ context.Context, url string) ([]resource.Attributes, error) {
	parent := store.Clean(url)
	s.mu.RLock()
	var found []entry
	for _, e := range s.docs {
		if e.parent == parent {
			found = append(found, e)
		}
	}
	s.mu.RUnlock()
	sort.Slice(found, func(i, j int) bool { return found[i].seq < found[j].seq })
	out := make([]resource.Attributes, len(found))
	for i, e := range found {
		out[i] = copyDoc(e.doc)
	}
	return out, nil
}

// Create implements resource.Syncer. A document that already carries an id
// keeps it.
func (s *Store) Create(_ context.Context, url, idAttribute string, doc resource.Attributes) (resource.Attributes, error) {
	d := copyDoc(doc)
	id := ""
	if v, ok := d[idAttribute]; ok && v != nil {
		id = fmt.Sprint(v)
	} else {
		id = s.newID()
		d[idAttribute] = id
	}
	u := store.Join(url, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(u, d)
	return copyDoc(d), nil
}

// Update implements resource.Syncer. Missing documents are created.
func (s *Store) Update(_ context.Context, url string, doc resource.Attributes) (resource.Attributes, error) {
	d := copyDoc(doc)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(store.Clean(url), d)
	return copyDoc(d), nil
}

// Delete implements resource.Syncer.
func (s *Store) Delete(_ context.Context, url string) error {
	u := store.Clean(url)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[u]; !ok {
		return fmt.Errorf("%w: %s", resource.ErrNotFound, u)
	}
	delete(s.docs, u)
	return nil
}

// put stores d at u, keeping the insertion position of an existing document.
func (s *Store) put(u string, d resource.Attributes) {
	e, ok := s.docs[u]
	if !ok {
		s.seq++
		e = entry{parent: store.Parent(u), seq: s.seq}
	}
	e.doc = d
	s.docs[u] = e
}

func copyDoc(d resource.Attributes) resource.Attributes {
	out, _ := uref.Copy(map[string]any(d)).(map[string]any)
	if out == nil {
		out = map[string]any{}
	}
	return resource.Attributes(out)
}
