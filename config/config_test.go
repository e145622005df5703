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

package config_test

import (
	"errors"
	"testing"

	"dirpx.dev/assoc/apis"
	"dirpx.dev/assoc/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.Redeclare != config.DefaultRedeclare {
		t.Fatalf("Redeclare = %v, want %v", got.Redeclare, config.DefaultRedeclare)
	}
	if got.MaxDepth != config.DefaultMaxDepth {
		t.Fatalf("MaxDepth = %d, want %d", got.MaxDepth, config.DefaultMaxDepth)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithRedeclare(t *testing.T) {
	c := config.NewConfig(config.WithRedeclare(apis.RedeclareReject))
	if c.Redeclare != apis.RedeclareReject {
		t.Fatalf("Redeclare = %v, want reject", c.Redeclare)
	}
}

func TestWithMaxDepth_Positive(t *testing.T) {
	c := config.NewConfig(config.WithMaxDepth(3))
	if c.MaxDepth != 3 {
		t.Fatalf("MaxDepth = %d, want 3", c.MaxDepth)
	}
}

func TestWithMaxDepth_NonPositive_ResetsToDefault(t *testing.T) {
	for _, v := range []int{0, -1} {
		c := config.NewConfig(config.WithMaxDepth(v))
		if c.MaxDepth != config.DefaultMaxDepth {
			t.Fatalf("WithMaxDepth(%d): MaxDepth = %d, want default %d", v, c.MaxDepth, config.DefaultMaxDepth)
		}
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithRedeclare(apis.RedeclareReject),
		config.WithRedeclare(apis.RedeclareMerge),
		config.WithMaxDepth(2),
		config.WithMaxDepth(5),
	)

	if c.Redeclare != apis.RedeclareMerge {
		t.Errorf("Redeclare = %v, want merge (last option wins)", c.Redeclare)
	}
	if c.MaxDepth != 5 {
		t.Errorf("MaxDepth = %d, want 5 (last option wins)", c.MaxDepth)
	}
}

func TestValidate(t *testing.T) {
	if err := config.Validate(config.DefaultConfig()); err != nil {
		t.Fatalf("Validate(default) = %v", err)
	}
	if err := config.Validate(apis.Config{Redeclare: 9, MaxDepth: 1}); !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("Validate(bad policy) = %v, want ErrInvalidConfig", err)
	}
	if err := config.Validate(apis.Config{}); !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("Validate(zero depth) = %v, want ErrInvalidConfig", err)
	}
}

func TestParseRedeclarePolicy(t *testing.T) {
	cases := map[string]apis.RedeclarePolicy{"": apis.RedeclareMerge, "Merge": apis.RedeclareMerge, " reject ": apis.RedeclareReject}
	for in, want := range cases {
		got, err := apis.ParseRedeclarePolicy(in)
		if err != nil || got != want {
			t.Fatalf("ParseRedeclarePolicy(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := apis.ParseRedeclarePolicy("overwrite"); err == nil {
		t.Fatalf("ParseRedeclarePolicy(overwrite) must fail")
	}
}
