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

package reflect_test

import (
	"errors"
	"testing"

	uref "dirpx.dev/assoc/utils/reflect"
)

type attrs map[string]any

func TestMap_Shapes(t *testing.T) {
	plain := map[string]any{"a": 1}
	got, err := uref.Map(plain)
	if err != nil {
		t.Fatalf("Map(plain) error: %v", err)
	}
	got["b"] = 2
	if _, ok := plain["b"]; !ok {
		t.Fatalf("Map(map[string]any) must not copy")
	}

	named := attrs{"a": 1}
	got, err = uref.Map(named)
	if err != nil || got["a"] != 1 {
		t.Fatalf("Map(named) = %v, %v", got, err)
	}

	typed := map[string]int{"x": 3}
	got, err = uref.Map(&typed)
	if err != nil || got["x"] != 3 {
		t.Fatalf("Map(*map[string]int) = %v, %v", got, err)
	}

	got, err = uref.Map(nil)
	if err != nil || got != nil {
		t.Fatalf("Map(nil) = %v, %v", got, err)
	}

	var nilPtr *map[string]any
	got, err = uref.Map(nilPtr)
	if err != nil || got != nil {
		t.Fatalf("Map(nil ptr) = %v, %v", got, err)
	}
}

func TestMap_Rejects(t *testing.T) {
	for _, v := range []any{42, "s", []any{1}, map[int]any{1: 1}} {
		if _, err := uref.Map(v); !errors.Is(err, uref.ErrNotMap) {
			t.Fatalf("Map(%#v) err = %v, want ErrNotMap", v, err)
		}
	}
}

func TestList_Shapes(t *testing.T) {
	got, err := uref.List([]map[string]any{{"id": 1}, {"id": 2}})
	if err != nil || len(got) != 2 {
		t.Fatalf("List(typed slice) = %v, %v", got, err)
	}
	got, err = uref.List([2]int{4, 5})
	if err != nil || len(got) != 2 || got[1] != 5 {
		t.Fatalf("List(array) = %v, %v", got, err)
	}
	if _, err := uref.List(map[string]any{}); !errors.Is(err, uref.ErrNotList) {
		t.Fatalf("List(map) err = %v, want ErrNotList", err)
	}
}

func TestCopy_Deep(t *testing.T) {
	src := map[string]any{
		"nested": map[string]any{"k": "v"},
		"list":   []any{map[string]any{"id": 1}},
		"typed":  attrs{"x": []any{1}},
	}
	dst := uref.Copy(src).(map[string]any)

	dst["nested"].(map[string]any)["k"] = "changed"
	dst["list"].([]any)[0].(map[string]any)["id"] = 2
	dst["typed"].(attrs)["x"].([]any)[0] = 9

	if src["nested"].(map[string]any)["k"] != "v" {
		t.Fatalf("nested map shared")
	}
	if src["list"].([]any)[0].(map[string]any)["id"] != 1 {
		t.Fatalf("nested list shared")
	}
	if src["typed"].(attrs)["x"].([]any)[0] != 1 {
		t.Fatalf("named map shared")
	}
}

func TestCopy_SharesObjects(t *testing.T) {
	type obj struct{ n int }
	p := &obj{n: 1}
	dst := uref.Copy(map[string]any{"p": p}).(map[string]any)
	if dst["p"] != p {
		t.Fatalf("pointer values must be shared")
	}
}
