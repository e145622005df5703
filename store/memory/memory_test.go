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

package memory_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/assoc/resource"
	"dirpx.dev/assoc/store/memory"
	"dirpx.dev/assoc/store/storetest"
)

func TestConformance(t *testing.T) {
	storetest.Run(t, func(*testing.T) resource.Syncer { return memory.New() })
}

func TestStore_IDGenerator(t *testing.T) {
	n := 0
	s := memory.New(memory.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("doc-%d", n)
	}))
	doc, err := s.Create(context.Background(), "/items", "id", resource.Attributes{})
	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc["id"])
	assert.Equal(t, 1, s.Len())
}

func TestStore_KeepsValueTypes(t *testing.T) {
	s := memory.New()
	_, err := s.Update(context.Background(), "/items/1", resource.Attributes{"n": 42})
	require.NoError(t, err)
	got, err := s.Read(context.Background(), "/items/1")
	require.NoError(t, err)
	assert.Equal(t, 42, got["n"])
}
