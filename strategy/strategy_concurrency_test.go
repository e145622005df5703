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

package strategy_test

import (
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/assoc/apis"
	"dirpx.dev/assoc/config"
	"dirpx.dev/assoc/resolver"
	"dirpx.dev/assoc/resource"
	"dirpx.dev/assoc/strategy"
)

// TestDefault_ConcurrentApply_NoRace verifies that the default chain is
// race-free when each goroutine works on its own models.
func TestDefault_ConcurrentApply_NoRace(t *testing.T) {
	u := resolver.NewChain(strategy.Default()...)
	cfg := config.DefaultConfig()
	d := apis.Descriptor{Type: leaves, URL: apis.URL("/leaves")}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			parent, err := owner.New(resource.Attributes{"id": id})
			if err != nil {
				t.Errorf("New: %v", err)
				return
			}
			var current any
			for i := 0; i < 500; i++ {
				out, err := u.Apply(apis.Slot{
					Owner:      parent,
					Key:        "leaves",
					Descriptor: d,
					Current:    current,
					Incoming:   []any{map[string]any{"id": i % 7}},
					Present:    true,
				}, cfg)
				if err != nil {
					t.Errorf("Apply: %v", err)
					return
				}
				current = out.Value
			}
			if c := current.(*resource.Collection); c.Len() != 1 {
				t.Errorf("Len() = %d, want 1", c.Len())
			}
		}(w)
	}
	wg.Wait()
}
