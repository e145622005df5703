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

// Resolver computes effective relationship tables.
type Resolver interface {
	// Resolve returns the union of own tables from the root class down to c,
	// nearest declaration winning. The result is a copy; an empty table means
	// c has no relationships.
	Resolve(c *resource.Class) Table
}
