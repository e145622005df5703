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

// Registry stores each class's OWN relationship table. Inheritance is the
// resolver's job. Keep it minimal so implementations can be sync.Map-backed.
type Registry interface {
	// Declare validates rels and merges them into c's own table under the
	// registry's redeclare policy. Nothing is written when validation fails.
	Declare(c *resource.Class, rels Relationships) error
	// Undeclare drops c's own table.
	Undeclare(c *resource.Class) error
	// Own returns a copy of c's own table.
	Own(c *resource.Class) (Table, bool)
	// Declared reports whether c has an own table.
	Declared(c *resource.Class) bool
	// Entries returns a snapshot ordered by class depth, then name.
	Entries() []Entry
	// Count returns the number of declared classes.
	Count() int
	// Generation increases on every successful write.
	Generation() uint64
	// Reset clears all declarations.
	Reset()
}

// Entry is a single (class, own table) pair in a Registry snapshot.
type Entry struct {
	// Class is the declaring class.
	Class *resource.Class
	// Table is a copy of the class's own table.
	Table Table
}
