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

package config

import (
	"errors"
	"fmt"

	"dirpx.dev/assoc/apis"
)

const (
	// DefaultRedeclare represents the default for Redeclare.
	// Re-declaring a key replaces the previous descriptor.
	DefaultRedeclare = apis.RedeclareMerge
	// DefaultMaxDepth represents the default for MaxDepth.
	// A value of 32 should be sufficient for all practical purposes.
	DefaultMaxDepth = 32
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("assoc(config): invalid config")

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxDepth is valid.
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Redeclare: DefaultRedeclare,
		MaxDepth:  DefaultMaxDepth,
	}
}

// Validate reports configurations that NewConfig would never produce.
func Validate(cfg apis.Config) error {
	switch cfg.Redeclare {
	case apis.RedeclareMerge, apis.RedeclareReject:
	default:
		return fmt.Errorf("%w: redeclare policy %v", ErrInvalidConfig, cfg.Redeclare)
	}
	if cfg.MaxDepth <= 0 {
		return fmt.Errorf("%w: max depth %d", ErrInvalidConfig, cfg.MaxDepth)
	}
	return nil
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithRedeclare sets the Redeclare option.
func WithRedeclare(p apis.RedeclarePolicy) Option {
	return func(c *apis.Config) {
		c.Redeclare = p
	}
}

// WithMaxDepth sets the MaxDepth option.
// A non-positive value resets to the default.
func WithMaxDepth(max int) Option {
	return func(c *apis.Config) {
		if max <= 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = max
	}
}
