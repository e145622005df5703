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

import (
	"errors"
	"fmt"
)

var (
	// ErrNilClass is returned when a declaration names no class.
	ErrNilClass = errors.New("assoc: nil class")
	// ErrNilType is returned when a descriptor has no Type.
	ErrNilType = errors.New("assoc: relationship type is nil")
	// ErrSelfReference is returned when a descriptor's Type is its own class.
	ErrSelfReference = errors.New("assoc: relationship type is the declaring class")
	// ErrRedeclared is returned under RedeclareReject for keys already owned.
	ErrRedeclared = errors.New("assoc: relationship already declared")
	// ErrNotDeclared is returned when undeclaring a class without declarations.
	ErrNotDeclared = errors.New("assoc: class has no declared relationships")
	// ErrEmptyKey is returned for a blank relationship key.
	ErrEmptyKey = errors.New("assoc: empty relationship key")
	// ErrIncompatibleValue is returned when data has the wrong shape for the
	// declared type.
	ErrIncompatibleValue = errors.New("assoc: value incompatible with relationship type")
	// ErrMaxDepth is returned when building children nests deeper than
	// Config.MaxDepth.
	ErrMaxDepth = errors.New("assoc: relationship nesting exceeds max depth")
	// ErrNoStrategy is returned when no strategy handled a slot.
	ErrNoStrategy = errors.New("assoc: no strategy for slot")
)

// ConfigurationError reports an invalid declaration.
type ConfigurationError struct {
	// Class is the declaring class name.
	Class string
	// Key is the offending key, empty when the error concerns the class.
	Key string
	// Err is the sentinel cause.
	Err error
}

// Error implements error.
func (e *ConfigurationError) Error() string {
	switch {
	case e.Class == "" && e.Key == "":
		return e.Err.Error()
	case e.Key == "":
		return fmt.Sprintf("%s: %v", e.Class, e.Err)
	default:
		return fmt.Sprintf("%s.%s: %v", e.Class, e.Key, e.Err)
	}
}

// Unwrap returns the sentinel cause.
func (e *ConfigurationError) Unwrap() error { return e.Err }
