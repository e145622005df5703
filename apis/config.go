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
	"fmt"
	"strings"
)

// RedeclarePolicy decides what Declare does with keys a class already owns.
type RedeclarePolicy uint8

const (
	// RedeclareMerge adds new keys and replaces existing ones.
	RedeclareMerge RedeclarePolicy = iota
	// RedeclareReject fails the whole declaration if any key already exists
	// on the class.
	RedeclareReject
)

// String implements fmt.Stringer.
func (p RedeclarePolicy) String() string {
	switch p {
	case RedeclareMerge:
		return "merge"
	case RedeclareReject:
		return "reject"
	default:
		return fmt.Sprintf("RedeclarePolicy(%d)", uint8(p))
	}
}

// ParseRedeclarePolicy parses "merge" or "reject" (case-insensitive).
func ParseRedeclarePolicy(s string) (RedeclarePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "merge":
		return RedeclareMerge, nil
	case "reject":
		return RedeclareReject, nil
	}
	return 0, fmt.Errorf("assoc: unknown redeclare policy %q", s)
}

// Config carries read-only engine knobs. It is passed by value and should be
// treated as immutable by implementations.
type Config struct {
	// Redeclare controls re-declaration of keys a class already owns.
	Redeclare RedeclarePolicy

	// MaxDepth limits how many relationship levels a single call may build.
	// Acts as a safety guard against mutually recursive declarations, which
	// would otherwise seed empty children forever.
	MaxDepth int
}
