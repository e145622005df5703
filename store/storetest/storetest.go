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

// Package storetest is a conformance suite for resource.Syncer
// implementations.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/assoc/resource"
)

// Factory returns a fresh, empty syncer for one subtest.
type Factory func(t *testing.T) resource.Syncer

// Run exercises every Syncer operation against stores built by newStore.
// Documents hold only strings, bools and nested containers so the suite
// applies to stores that round-trip through JSON.
func Run(t *testing.T, newStore Factory) {
	t.Helper()
	ctx := context.Background()

	tests := []struct {
		name  string
		check func(t *testing.T, s resource.Syncer)
	}{
		{
			name: "create assigns id below url",
			check: func(t *testing.T, s resource.Syncer) {
				doc, err := s.Create(ctx, "/countries", "id", resource.Attributes{"name": "Canada"})
				require.NoError(t, err)
				id, ok := doc["id"].(string)
				require.True(t, ok, "id must be a string, got %T", doc["id"])
				require.NotEmpty(t, id)

				got, err := s.Read(ctx, "/countries/"+id)
				require.NoError(t, err)
				assert.Equal(t, "Canada", got["name"])
				assert.Equal(t, id, got["id"])
			},
		},
		{
			name: "create keeps existing id",
			check: func(t *testing.T, s resource.Syncer) {
				doc, err := s.Create(ctx, "/countries/", "name", resource.Attributes{"name": "Canada"})
				require.NoError(t, err)
				assert.Equal(t, "Canada", doc["name"])

				_, err = s.Read(ctx, "/countries/Canada")
				require.NoError(t, err)
			},
		},
		{
			name: "update upserts and replaces",
			check: func(t *testing.T, s resource.Syncer) {
				_, err := s.Update(ctx, "/countries/Canada", resource.Attributes{"name": "Canada", "capital": "Ottawa"})
				require.NoError(t, err)
				_, err = s.Update(ctx, "/countries/Canada", resource.Attributes{"name": "Canada"})
				require.NoError(t, err)

				got, err := s.Read(ctx, "/countries/Canada")
				require.NoError(t, err)
				assert.Equal(t, "Canada", got["name"])
				assert.NotContains(t, got, "capital")
			},
		},
		{
			name: "list returns direct children in insertion order",
			check: func(t *testing.T, s resource.Syncer) {
				for _, name := range []string{"Regina", "Calgary", "Windsor"} {
					_, err := s.Update(ctx, "/countries/Canada/cities/"+name, resource.Attributes{"name": name})
					require.NoError(t, err)
				}
				_, err := s.Update(ctx, "/countries/Canada", resource.Attributes{"name": "Canada"})
				require.NoError(t, err)
				_, err = s.Update(ctx, "/countries/Canada/cities/Regina", resource.Attributes{"name": "Regina", "province": "SK"})
				require.NoError(t, err)

				docs, err := s.List(ctx, "/countries/Canada/cities")
				require.NoError(t, err)
				var got []any
				for _, d := range docs {
					got = append(got, d["name"])
				}
				assert.Equal(t, []any{"Regina", "Calgary", "Windsor"}, got)
				assert.Equal(t, "SK", docs[0]["province"])

				docs, err = s.List(ctx, "/nothing")
				require.NoError(t, err)
				assert.Empty(t, docs)
			},
		},
		{
			name: "nested data survives",
			check: func(t *testing.T, s resource.Syncer) {
				doc := resource.Attributes{
					"name":   "Canada",
					"flag":   resource.Attributes{"colors": []any{"red", "white"}},
					"cities": []resource.Attributes{{"name": "Calgary"}},
					"member": true,
				}
				_, err := s.Update(ctx, "/countries/Canada", doc)
				require.NoError(t, err)

				got, err := s.Read(ctx, "/countries/Canada")
				require.NoError(t, err)
				flag, err := resource.AsAttributes(got["flag"])
				require.NoError(t, err)
				assert.Len(t, flag["colors"], 2)
				assert.Equal(t, true, got["member"])
			},
		},
		{
			name: "read returns a copy",
			check: func(t *testing.T, s resource.Syncer) {
				_, err := s.Update(ctx, "/a/1", resource.Attributes{"name": "x"})
				require.NoError(t, err)
				got, err := s.Read(ctx, "/a/1")
				require.NoError(t, err)
				got["name"] = "y"

				again, err := s.Read(ctx, "/a/1")
				require.NoError(t, err)
				assert.Equal(t, "x", again["name"])
			},
		},
		{
			name: "delete and not found",
			check: func(t *testing.T, s resource.Syncer) {
				_, err := s.Update(ctx, "/a/1", resource.Attributes{"name": "x"})
				require.NoError(t, err)
				require.NoError(t, s.Delete(ctx, "/a/1"))

				_, err = s.Read(ctx, "/a/1")
				require.ErrorIs(t, err, resource.ErrNotFound)
				require.ErrorIs(t, s.Delete(ctx, "/a/1"), resource.ErrNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, newStore(t))
		})
	}
}
