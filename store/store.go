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

// Package store holds what the document stores share: URL path handling and
// the id generator. Implementations live in the subpackages memory and
// sqlstore; both satisfy resource.Syncer.
package store

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// IDGenerator returns a new document id.
type IDGenerator func() string

// NewID returns a UUID v7 string, falling back to v4.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Clean normalizes a document URL: a single leading slash, no trailing
// slash, no empty or dot segments.
func Clean(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return "/"
	}
	return path.Clean("/" + u)
}

// Parent returns the URL of the collection holding u.
func Parent(u string) string {
	return path.Dir(Clean(u))
}

// Join appends an id segment to a collection URL.
func Join(u, id string) string {
	return Clean(u + "/" + id)
}
