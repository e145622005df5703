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

import "errors"

var (
	// ErrNoURL is returned when a resource has no locator.
	ErrNoURL = errors.New("resource: no url")
	// ErrInvalidData is returned when data has the wrong shape for a type.
	ErrInvalidData = errors.New("resource: invalid data")
	// ErrMethodSignature is returned when a hook has the wrong signature.
	ErrMethodSignature = errors.New("resource: method has wrong signature")
	// ErrNotFound is returned by syncers when a document does not exist.
	ErrNotFound = errors.New("resource: not found")
	// ErrInvalidArgs is returned by SetArgs for unusable argument lists.
	ErrInvalidArgs = errors.New("resource: invalid set arguments")
)
