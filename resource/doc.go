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

/*
Package resource is the attribute-bag entity layer the association engine
builds on: model classes with single inheritance, models, ordered
collections, events and document sync.

# Classes

A model class is created by extending Base (or any other class):

	Country := resource.Base.Extend("Country",
		resource.WithIDAttribute("name"),
		resource.WithURLRoot("/countries"),
	)

Each class owns a method table with four lifecycle slots (initialize, set,
parse, toJSON). A slot without an own implementation resolves to the
parent's. Slots are read and replaced through OwnMethod, LookupMethod and
SetMethod, which is how decorators are installed from outside the package.

# Models

Class.New runs, in order: parse (when Options.Parse is set), defaults,
the set hook, the initialize hook. All attribute writes made by callers go
through the set hook; Replace and Unset write storage directly.

# Collections

A CollectionClass binds a member class. Collection.Set merges incoming
items into existing members by id, Collection.Reset replaces them.

# Sync

Model.Fetch, Model.Save, Model.Destroy, Collection.Fetch and
Collection.Create talk to a Syncer. Responses always pass through the parse
hook before they are set.
*/
package resource
