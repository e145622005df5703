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

package assoc_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/assoc"
	"dirpx.dev/assoc/apis"
	"dirpx.dev/assoc/resource"
)

func Example() {
	flag := resource.Base.Extend("Flag")
	city := resource.Base.Extend("City", resource.WithIDAttribute("name"))
	cities := resource.BaseCollection.Extend("Cities", resource.WithModel(city))
	country := resource.Base.Extend("Country",
		resource.WithIDAttribute("name"),
		resource.WithURLRoot("/countries"),
	)

	err := assoc.Declare(country, assoc.Relationships{
		"flag":   {Type: flag},
		"cities": {Type: cities, URL: apis.URL("/cities")},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer func() { _ = assoc.Undeclare(country) }()

	canada, err := country.New(resource.Attributes{
		"name":   "Canada",
		"cities": []any{map[string]any{"name": "Calgary"}, map[string]any{"name": "Regina"}},
	}, resource.Options{Parse: true})
	if err != nil {
		fmt.Println(err)
		return
	}

	canada.Children("cities").On(resource.EventAdd, func(e resource.Event) {
		fmt.Println("added", e.Model.Get("name"))
	})
	_ = canada.Children("cities").Add(map[string]any{"name": "St. John's"})
	_ = canada.Set(resource.Attributes{"flag": map[string]any{"colors": []any{"red", "white"}}})

	u, _ := canada.Children("cities").First().URL()
	fmt.Println(u)

	b, _ := json.Marshal(canada)
	fmt.Println(string(b))
	// Output:
	// added St. John's
	// /countries/Canada/cities/Calgary
	// {"cities":[{"name":"Calgary"},{"name":"Regina"},{"name":"St. John's"}],"flag":{"colors":["red","white"]},"name":"Canada"}
}

// resettingSet replaces collection members and updates model children
// directly, passing everything else to the base set.
func resettingSet(m *resource.Model, attrs resource.Attributes, opts resource.Options) error {
	rest := make(resource.Attributes, len(attrs))
	for key, value := range attrs {
		switch cur := m.Get(key).(type) {
		case *resource.Collection:
			if err := cur.Reset(value, opts.Nested()); err != nil {
				return err
			}
		case *resource.Model:
			data, err := resource.AsAttributes(value)
			if err != nil {
				return err
			}
			if err := cur.Set(data, opts.Nested()); err != nil {
				return err
			}
		default:
			rest[key] = value
		}
	}
	super, _ := resource.Base.LookupMethod(resource.HookSet)
	return super.(resource.SetFunc)(m, rest, opts)
}

type countryFixture struct {
	country *resource.Class
	flag    *resource.Class
	cities  *resource.CollectionClass
	canada  *resource.Model
}

func newCountryFixture(t *testing.T) *countryFixture {
	t.Helper()
	resetEngine(t)

	f := &countryFixture{flag: resource.Base.Extend("Flag")}
	city := resource.Base.Extend("City", resource.WithIDAttribute("name"))
	f.cities = resource.BaseCollection.Extend("Cities", resource.WithModel(city))
	f.country = resource.Base.Extend("Country",
		resource.WithIDAttribute("name"),
		resource.WithURLRoot("/countries"),
		resource.WithSet(resettingSet),
	)
	require.NoError(t, assoc.Declare(f.country, assoc.Relationships{
		"flag":   {Type: f.flag},
		"cities": {Type: f.cities},
	}))

	var err error
	f.canada, err = f.country.New(resource.Attributes{
		"name":   "Canada",
		"cities": []any{map[string]any{"name": "Calgary"}, map[string]any{"name": "Regina"}},
	}, resource.Options{Parse: true})
	require.NoError(t, err)

	cities, ok := f.canada.Accessor("cities")
	require.True(t, ok)
	require.Same(t, f.canada.Children("cities"), cities())
	require.Equal(t, 2, f.canada.Children("cities").Len())

	flag, ok := f.canada.Accessor("flag")
	require.True(t, ok)
	require.True(t, f.flag.IsInstance(flag()))
	require.Same(t, f.canada.Child("flag"), flag())
	require.Empty(t, f.canada.Child("flag").Attributes())
	return f
}

func TestCountry_SetsAssociatedModels(t *testing.T) {
	f := newCountryFixture(t)
	flag := f.canada.Child("flag")
	expected := resource.Attributes{"colors": []any{"green", "blue"}}

	require.NoError(t, f.canada.Set(resource.Attributes{"flag": map[string]any(expected)}))
	assert.Equal(t, expected, f.canada.Child("flag").Attributes())
	assert.True(t, f.flag.IsInstance(f.canada.Get("flag")))
	assert.Same(t, flag, f.canada.Child("flag"))
}

func TestCountry_SetsAssociatedCollections(t *testing.T) {
	f := newCountryFixture(t)
	cities := f.canada.Children("cities")
	expected := []any{map[string]any{"name": "Saskatoon"}, map[string]any{"name": "Windsor"}}

	require.NoError(t, f.canada.Set(resource.Attributes{"cities": expected}))
	assert.Equal(t, len(expected), cities.Len())
	assert.NotNil(t, cities.Get("Saskatoon"))
	assert.NotNil(t, cities.Get("Windsor"))
	assert.True(t, f.cities.IsInstance(f.canada.Get("cities")))
	assert.Same(t, cities, f.canada.Children("cities"))
}

func TestCountry_MemberURLFollowsCollection(t *testing.T) {
	f := newCountryFixture(t)
	city := f.canada.Children("cities").First()

	base, err := f.canada.URL()
	require.NoError(t, err)
	require.Equal(t, "/countries/Canada", base)

	expected := base + "/cities"
	f.canada.Children("cities").SetURLFunc(resource.StaticURL(expected))
	u, err := city.URL()
	require.NoError(t, err)
	assert.Equal(t, expected+"/Calgary", u)
}

func TestCountry_AddEvent(t *testing.T) {
	f := newCountryFixture(t)
	called := 0
	f.canada.Children("cities").On(resource.EventAdd, func(resource.Event) { called++ })

	require.NoError(t, f.canada.Children("cities").Add(map[string]any{"name": "St. John's"}))
	assert.Equal(t, 1, called)
}
