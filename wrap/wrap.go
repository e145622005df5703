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

// Package wrap installs restorable decorators on name-addressed method
// slots. A slot is any (table, name) pair exposed through Table; the
// decorator receives the implementation the slot currently resolves to and
// returns its replacement, which is stored as the table's own method.
package wrap

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	// ErrNilTable is returned when no table is given.
	ErrNilTable = errors.New("wrap: nil table")
	// ErrUnknownMethod is returned when the slot resolves to nothing.
	ErrUnknownMethod = errors.New("wrap: unknown method")
	// ErrSignature is returned when the resolved method is not of type F.
	ErrSignature = errors.New("wrap: method has a different signature")
	// ErrNilDecorator is returned for a nil decorator or a nil replacement.
	ErrNilDecorator = errors.New("wrap: nil decorator")
)

// Table exposes a method table with inheritance: OwnMethod sees only the
// table's own slots, LookupMethod resolves through ancestors.
type Table interface {
	OwnMethod(name string) (any, bool)
	LookupMethod(name string) (any, bool)
	SetMethod(name string, fn any) error
}

// Patch is an installed decorator.
type Patch struct {
	mu     sync.Mutex
	table  Table
	name   string
	prev   any
	hadOwn bool
	active bool
}

// Install resolves name on t, asserts it is an F, and stores
// decorate(original) as t's own method.
func Install[F any](t Table, name string, decorate func(original F) F) (*Patch, error) {
	if t == nil {
		return nil, ErrNilTable
	}
	if decorate == nil {
		return nil, ErrNilDecorator
	}
	resolved, ok := t.LookupMethod(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
	}
	original, ok := resolved.(F)
	if !ok {
		var want F
		return nil, fmt.Errorf("%w: %s is %T, want %T", ErrSignature, name, resolved, want)
	}
	prev, hadOwn := t.OwnMethod(name)

	replacement := decorate(original)
	if isNil(replacement) {
		return nil, ErrNilDecorator
	}
	if err := t.SetMethod(name, replacement); err != nil {
		return nil, err
	}
	return &Patch{table: t, name: name, prev: prev, hadOwn: hadOwn, active: true}, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Name returns the slot name.
func (p *Patch) Name() string { return p.name }

// HadOwn reports whether the table had an own method before the patch.
func (p *Patch) HadOwn() bool { return p.hadOwn }

// Active reports whether the patch is still installed.
func (p *Patch) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Restore puts back the previous own method, or removes the own method when
// there was none. Restoring twice is a no-op.
func (p *Patch) Restore() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return nil
	}
	var prev any
	if p.hadOwn {
		prev = p.prev
	}
	if err := p.table.SetMethod(p.name, prev); err != nil {
		return err
	}
	p.active = false
	return nil
}
