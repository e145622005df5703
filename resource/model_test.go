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

package resource_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/assoc/resource"
)

func TestClass_Inheritance(t *testing.T) {
	animal := resource.Base.Extend("Animal",
		resource.WithIDAttribute("tag"),
		resource.WithURLRoot("/animals"),
		resource.WithDefaults(resource.Attributes{"legs": 4}),
	)
	dog := animal.Extend("Dog")
	bird := animal.Extend("Bird", resource.WithDefaults(resource.Attributes{"legs": 2}))

	assert.Equal(t, "tag", dog.IDAttribute())
	assert.Equal(t, "/animals", dog.URLRoot())
	assert.Equal(t, 4, dog.Defaults()["legs"])
	assert.Equal(t, 2, bird.Defaults()["legs"])
	assert.Equal(t, 2, dog.Depth())
	assert.True(t, dog.Is(animal))
	assert.False(t, animal.Is(dog))
	assert.False(t, dog.Is(bird))
	assert.Equal(t, []*resource.Class{dog, bird}, animal.Subclasses())
}

func TestClass_InferredURLRoot(t *testing.T) {
	country := resource.Base.Extend("Country", resource.WithInferredURLRoot())
	capital := country.Extend("CapitalCity")
	assert.Equal(t, "/countries", country.URLRoot())
	assert.Equal(t, "/countries", capital.URLRoot())
}

func TestClass_DefaultsAreCopiedPerInstance(t *testing.T) {
	cls := resource.Base.Extend("Tagged", resource.WithDefaults(resource.Attributes{
		"tags": []any{"a"},
	}))
	a, err := cls.New(nil)
	require.NoError(t, err)
	b, err := cls.New(nil)
	require.NoError(t, err)

	a.Get("tags").([]any)[0] = "changed"
	assert.Equal(t, "a", b.Get("tags").([]any)[0])
	assert.Equal(t, "a", cls.Defaults()["tags"].([]any)[0])
}

func TestClass_SetMethod(t *testing.T) {
	cls := resource.Base.Extend("Hooked")

	err := cls.SetMethod(resource.HookSet, func(int) {})
	require.ErrorIs(t, err, resource.ErrMethodSignature)

	calls := 0
	require.NoError(t, cls.SetMethod(resource.HookSet, func(m *resource.Model, a resource.Attributes, o resource.Options) error {
		calls++
		super, _ := m.Class().Super(resource.HookSet)
		return super.(resource.SetFunc)(m, a, o)
	}))
	_, own := cls.OwnMethod(resource.HookSet)
	assert.True(t, own)

	m, err := cls.New(resource.Attributes{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, m.Get("a"))

	require.NoError(t, cls.SetMethod(resource.HookSet, nil))
	_, own = cls.OwnMethod(resource.HookSet)
	assert.False(t, own)
	_, inherited := cls.LookupMethod(resource.HookSet)
	assert.True(t, inherited)
}

func TestClass_NilHookOptionPanics(t *testing.T) {
	cases := map[string]resource.ClassOption{
		"initialize": resource.WithInitialize(nil),
		"set":        resource.WithSet(nil),
		"parse":      resource.WithParse(nil),
		"toJSON":     resource.WithToJSON(nil),
	}
	for name, opt := range cases {
		t.Run(name, func(t *testing.T) {
			var err error
			func() {
				defer func() { err, _ = recover().(error) }()
				resource.Base.Extend("Broken", opt)
			}()
			require.ErrorIs(t, err, resource.ErrMethodSignature)
			assert.Contains(t, err.Error(), "Broken")
		})
	}
}

func TestClass_IsInstance(t *testing.T) {
	parent := resource.Base.Extend("P")
	child := parent.Extend("C")
	m, err := child.New(nil)
	require.NoError(t, err)

	assert.True(t, parent.IsInstance(m))
	assert.True(t, child.IsInstance(m))
	assert.False(t, child.IsInstance(resource.Attributes{}))
	assert.False(t, child.IsInstance((*resource.Model)(nil)))
}

func TestClass_BuildRejectsLists(t *testing.T) {
	cls := resource.Base.Extend("Obj")
	_, err := cls.Build([]any{1}, resource.Options{})
	require.ErrorIs(t, err, resource.ErrInvalidData)
}

func TestModel_ConstructionOrder(t *testing.T) {
	var order []string
	cls := resource.Base.Extend("Ordered",
		resource.WithDefaults(resource.Attributes{"d": "default", "x": "default"}),
		resource.WithParse(func(m *resource.Model, data resource.Attributes, o resource.Options) (resource.Attributes, error) {
			order = append(order, "parse")
			out := data.Clone()
			out["parsed"] = true
			return out, nil
		}),
		resource.WithSet(func(m *resource.Model, a resource.Attributes, o resource.Options) error {
			order = append(order, "set")
			super, _ := m.Class().Super(resource.HookSet)
			return super.(resource.SetFunc)(m, a, o)
		}),
		resource.WithInitialize(func(m *resource.Model, a resource.Attributes, o resource.Options) error {
			order = append(order, "initialize")
			return nil
		}),
	)

	m, err := cls.New(resource.Attributes{"x": "given"}, resource.Options{Parse: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"parse", "set", "initialize"}, order)
	assert.Equal(t, "default", m.Get("d"))
	assert.Equal(t, "given", m.Get("x"))
	assert.Equal(t, true, m.Get("parsed"))
}

func TestModel_ChangeEvents(t *testing.T) {
	m, err := resource.Base.New(resource.Attributes{"a": 1})
	require.NoError(t, err)

	var got []string
	m.On(resource.EventChange, func(e resource.Event) { got = append(got, e.Name) })
	m.On(resource.ChangeEvent("a"), func(e resource.Event) { got = append(got, e.Name+"="+e.Value.(string)) })
	off := m.On(resource.ChangeEvent("b"), func(e resource.Event) { got = append(got, e.Name) })
	off()

	require.NoError(t, m.Set(resource.Attributes{"a": 1}))
	assert.Empty(t, got, "unchanged values do not fire")

	require.NoError(t, m.Set(resource.Attributes{"a": "two", "b": 2}))
	assert.Equal(t, []string{"change:a=two", "change"}, got)

	got = nil
	require.NoError(t, m.Set(resource.Attributes{"a": "three"}, resource.Options{Silent: true}))
	assert.Empty(t, got)
	assert.Equal(t, "three", m.Get("a"))
}

func TestModel_SetUncomparableValues(t *testing.T) {
	m, err := resource.Base.New(resource.Attributes{"f": func() {}, "l": []any{1}})
	require.NoError(t, err)
	require.NoError(t, m.Set(resource.Attributes{"f": func() {}, "l": []any{1}}))
}

func TestModel_IDAndURL(t *testing.T) {
	country := resource.Base.Extend("Country", resource.WithIDAttribute("name"), resource.WithURLRoot("/countries"))
	m, err := country.New(nil)
	require.NoError(t, err)
	assert.True(t, m.IsNew())

	u, err := m.URL()
	require.NoError(t, err)
	assert.Equal(t, "/countries", u)

	require.NoError(t, m.SetKey("name", "New Zealand"))
	u, err = m.URL()
	require.NoError(t, err)
	assert.Equal(t, "/countries/New%20Zealand", u)

	m.SetURLFunc(resource.StaticURL("/custom"))
	u, err = m.URL()
	require.NoError(t, err)
	assert.Equal(t, "/custom", u)

	bare, err := resource.Base.New(nil)
	require.NoError(t, err)
	_, err = bare.URL()
	require.ErrorIs(t, err, resource.ErrNoURL)
}

func TestModel_URLRelativeToCollection(t *testing.T) {
	items := resource.BaseCollection.Extend("Items", resource.WithURL("/items"))
	c, err := items.New([]any{map[string]any{"id": 31}})
	require.NoError(t, err)

	u, err := c.First().URL()
	require.NoError(t, err)
	assert.Equal(t, "/items/31", u)

	c.SetURLFunc(resource.StaticURL("/parents/42/items/"))
	u, err = c.First().URL()
	require.NoError(t, err)
	assert.Equal(t, "/parents/42/items/31", u)
}

func TestModel_UnsetAndReplace(t *testing.T) {
	m, err := resource.Base.New(resource.Attributes{"a": 1, "b": 2})
	require.NoError(t, err)
	fired := 0
	m.On(resource.EventChange, func(resource.Event) { fired++ })

	m.Replace("a", 10)
	assert.Equal(t, 10, m.Get("a"))
	assert.Equal(t, 0, fired)

	m.Unset("b")
	assert.False(t, m.Has("b"))
	assert.Equal(t, 1, fired)
}

func TestModel_MarshalJSON(t *testing.T) {
	m, err := resource.Base.New(resource.Attributes{"id": 7, "name": "x"})
	require.NoError(t, err)
	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"name":"x"}`, string(b))
}

func TestModel_Accessor(t *testing.T) {
	cls := resource.Base.Extend("WithAccessor")
	cls.DefineAccessor("one")
	sub := cls.Extend("Sub")

	m, err := sub.New(resource.Attributes{"one": 1})
	require.NoError(t, err)
	get, ok := m.Accessor("one")
	require.True(t, ok)
	assert.Equal(t, 1, get())

	_, ok = m.Accessor("two")
	assert.False(t, ok)

	cls.RemoveAccessor("one")
	_, ok = m.Accessor("one")
	assert.False(t, ok)
}

func TestModel_InitializeError(t *testing.T) {
	boom := errors.New("boom")
	cls := resource.Base.Extend("Failing", resource.WithInitialize(func(*resource.Model, resource.Attributes, resource.Options) error {
		return boom
	}))
	_, err := cls.New(nil)
	require.ErrorIs(t, err, boom)
}
