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

// Package strategy holds the update strategies that decide, per declared
// key, how an incoming value meets the value already in storage.
//
// Default returns them in the order the filter consults them:
//
//	current  incoming  strategy    effect
//	child    child     adopt       storage swapped to incoming
//	child    absent    keep        nothing
//	child    nil       clear       nil reaches the base set
//	model    raw       merge       child.Set(incoming)
//	coll.    raw       collection  child.Set or child.Reset (Descriptor.Reset)
//	other    child     pass        incoming reaches the base set
//	other    raw/abs.  build       new child from incoming
package strategy

import "dirpx.dev/assoc/apis"

// Default returns the standard strategy order.
func Default() []apis.Strategy {
	return []apis.Strategy{
		NewAdoptStrategy(),
		NewKeepStrategy(),
		NewClearStrategy(),
		NewMergeStrategy(),
		NewCollectionStrategy(),
		NewPassStrategy(),
		NewBuildStrategy(),
	}
}
