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

package store_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/assoc/store"
)

func TestPaths(t *testing.T) {
	tests := []struct {
		in, clean, parent string
	}{
		{"/countries/Canada", "/countries/Canada", "/countries"},
		{"countries/Canada/", "/countries/Canada", "/countries"},
		{"/countries//Canada/cities", "/countries/Canada/cities", "/countries/Canada"},
		{"", "/", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.clean, store.Clean(tt.in))
			assert.Equal(t, tt.parent, store.Parent(tt.in))
		})
	}
	assert.Equal(t, "/countries/Canada", store.Join("/countries/", "Canada"))
}

func TestNewID(t *testing.T) {
	id, err := uuid.Parse(store.NewID())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}
