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

package assoc

import (
	"fmt"
	"runtime"
	"sync"
	"testing"
	"time"

	"dirpx.dev/assoc/builder"
	"dirpx.dev/assoc/config"
	"dirpx.dev/assoc/registry"
	"dirpx.dev/assoc/resource"
)

func TestDeclare_Concurrent_With_SetConfig(t *testing.T) {
	resetWithBuilder(t, builder.New(), config.DefaultConfig(), nil)

	child := resource.Base.Extend("ConcurrentChild")
	done := make(chan struct{})
	var wg sync.WaitGroup

	workers := runtime.GOMAXPROCS(0) * 4
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			owner := resource.Base.Extend(fmt.Sprintf("ConcurrentOwner%d", i))
			if err := Declare(owner, Relationships{"child": {Type: child}}); err != nil {
				t.Errorf("Declare failed: %v", err)
				return
			}
			for j := 0; j < 200; j++ {
				_ = Effective(owner)
				_ = Declared(owner)
			}
		}(i)
	}

	go func() {
		for i := 0; i < 20; i++ {
			if err := SetConfig(config.NewConfig(config.WithMaxDepth(16 + i))); err != nil {
				t.Errorf("SetConfig failed: %v", err)
			}
			time.Sleep(time.Millisecond)
		}
		close(done)
	}()

	wg.Wait()
	<-done

	if n := Registry().Count(); n != workers {
		t.Fatalf("Count = %d, want %d", n, workers)
	}
}

func TestExtend_Concurrent_With_SetRegistry(t *testing.T) {
	resetWithBuilder(t, builder.New(), config.DefaultConfig(), nil)

	owner := resource.Base.Extend("SwapOwner")
	child := resource.Base.Extend("SwapChild")
	declared := registry.New(config.DefaultConfig())
	if err := declared.Declare(owner, Relationships{"child": {Type: child}}); err != nil {
		t.Fatalf("Declare failed: %v", err)
	}
	empty := registry.New(config.DefaultConfig())

	ownJSON := resource.WithToJSON(func(m *resource.Model, _ resource.Options) resource.Attributes {
		return m.Attributes()
	})

	var (
		mu   sync.Mutex
		subs []*resource.Class
		wg   sync.WaitGroup
	)
	workers := runtime.GOMAXPROCS(0) * 4
	wg.Add(workers + 1)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				sub := owner.Extend(fmt.Sprintf("SwapSub%d_%d", i, j), ownJSON)
				mu.Lock()
				subs = append(subs, sub)
				mu.Unlock()
			}
		}(i)
	}
	go func() {
		defer wg.Done()
		for i := 0; i < 40; i++ {
			reg := empty
			if i%2 == 1 {
				reg = declared
			}
			if err := SetRegistry(reg); err != nil {
				t.Errorf("SetRegistry failed: %v", err)
			}
		}
	}()
	wg.Wait()

	if err := ExtendError(); err != nil {
		t.Fatalf("ExtendError = %v", err)
	}
	if got := Registry(); got != declared {
		t.Fatalf("Registry = %v, want the declared registry", got)
	}
	for _, sub := range subs {
		patched := false
		for _, hook := range Patched(sub) {
			if hook == resource.HookToJSON {
				patched = true
			}
		}
		if !patched {
			t.Fatalf("%s: own toJSON not patched after the registry settled", sub.Name())
		}
	}
}
