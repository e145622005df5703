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

package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/assoc/apis"
	"dirpx.dev/assoc/config"
	"dirpx.dev/assoc/lifecycle"
	"dirpx.dev/assoc/registry"
	"dirpx.dev/assoc/resolver"
	"dirpx.dev/assoc/resource"
	"dirpx.dev/assoc/strategy"
)

type engine struct {
	reg apis.Registry
	ext *lifecycle.Extensions
	icp *lifecycle.Interceptor
}

func newEngine(t *testing.T, opts ...config.Option) *engine {
	t.Helper()
	cfg := config.NewConfig(opts...)
	reg := registry.New(cfg)
	env := lifecycle.NewEnvironment(cfg, resolver.New(reg), resolver.NewChain(strategy.Default()...))
	ext := lifecycle.NewExtensions(env)
	e := &engine{reg: reg, ext: ext, icp: lifecycle.NewInterceptor(ext)}
	t.Cleanup(func() {
		e.reg.Reset()
		require.NoError(t, e.icp.Sync(e.reg))
	})
	return e
}

func (e *engine) declare(t *testing.T, c *resource.Class, rels apis.Relationships) {
	t.Helper()
	require.NoError(t, e.reg.Declare(c, rels))
	require.NoError(t, e.icp.Sync(e.reg))
}

func (e *engine) undeclare(t *testing.T, c *resource.Class) {
	t.Helper()
	require.NoError(t, e.reg.Undeclare(c))
	require.NoError(t, e.icp.Sync(e.reg))
}

type fixture struct {
	parent *resource.Class
	one    *resource.Class
	manies *resource.CollectionClass
}

func newFixture() fixture {
	one := resource.Base.Extend("One")
	return fixture{
		parent: resource.Base.Extend("Parent"),
		one:    one,
		manies: resource.BaseCollection.Extend("Manies", resource.WithModel(one)),
	}
}

func (f fixture) rels() apis.Relationships {
	return apis.Relationships{
		"one":    {Type: f.one},
		"manies": {Type: f.manies},
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	e := newEngine(t)
	f := newFixture()
	e.declare(t, f.parent, f.rels())

	m, err := f.parent.New(nil)
	require.NoError(t, err)

	in := resource.Attributes{"a": "foo", "one": map[string]any{"foo": "bar"}, "manies": []any{}}
	snapshot := in.Clone()
	out, err := e.ext.Filter(m, in, resource.Options{})
	require.NoError(t, err)

	assert.Equal(t, snapshot, in)
	assert.Equal(t, resource.Attributes{"a": "foo"}, out, "live children were updated in place")
	assert.Equal(t, "bar", m.Child("one").Get("foo"))
}

func TestFilter_UndeclaredClassPassesThrough(t *testing.T) {
	e := newEngine(t)
	m, err := resource.Base.Extend("Plain").New(nil)
	require.NoError(t, err)

	in := resource.Attributes{"one": map[string]any{"x": 1}}
	out, err := e.ext.Filter(m, in, resource.Options{})
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFilter_WrapsErrorsWithKeyPath(t *testing.T) {
	e := newEngine(t)
	f := newFixture()
	e.declare(t, f.parent, f.rels())

	m, err := f.parent.New(nil)
	require.NoError(t, err)
	err = m.SetKey("manies", "not a list")
	require.ErrorIs(t, err, apis.ErrIncompatibleValue)
	assert.Contains(t, err.Error(), "Parent.manies")
}

func TestInterceptor_TopMostClassOnly(t *testing.T) {
	e := newEngine(t)
	f := newFixture()
	child := f.parent.Extend("ParentChild")
	overriding := f.parent.Extend("Overriding", resource.WithSet(func(m *resource.Model, a resource.Attributes, o resource.Options) error {
		super, _ := m.Class().Super(resource.HookSet)
		return super.(resource.SetFunc)(m, a, o)
	}))

	e.declare(t, f.parent, f.rels())
	e.declare(t, child, apis.Relationships{"extra": {Type: f.one}})

	assert.Equal(t, resource.Hooks, e.icp.Patched(f.parent))
	assert.Empty(t, e.icp.Patched(child), "inherits the parent's patched slots")
	assert.Equal(t, []string{resource.HookSet}, e.icp.Patched(overriding))

	m, err := overriding.New(resource.Attributes{"one": map[string]any{"foo": "bar"}})
	require.NoError(t, err)
	assert.Equal(t, "bar", m.Child("one").Get("foo"))
}

func TestInterceptor_UndeclareRestores(t *testing.T) {
	e := newEngine(t)
	f := newFixture()
	grand := f.parent.Extend("Mid").Extend("Grand")

	e.declare(t, f.parent, f.rels())
	e.declare(t, grand, apis.Relationships{"extra": {Type: f.one}})
	assert.Empty(t, e.icp.Patched(grand))

	e.undeclare(t, f.parent)
	for _, hook := range resource.Hooks {
		_, own := f.parent.OwnMethod(hook)
		assert.False(t, own, "parent %s restored", hook)
	}
	assert.Equal(t, resource.Hooks, e.icp.Patched(grand), "descendant with own declarations takes over")

	m, err := f.parent.New(nil)
	require.NoError(t, err)
	assert.Nil(t, m.Get("one"))
	_, ok := m.Accessor("one")
	assert.False(t, ok)

	g, err := grand.New(nil)
	require.NoError(t, err)
	assert.True(t, f.one.IsInstance(g.Get("extra")))
	assert.Nil(t, g.Get("one"))
}

func TestInterceptor_NewSubclassWithOwnHook(t *testing.T) {
	e := newEngine(t)
	f := newFixture()
	e.declare(t, f.parent, f.rels())

	late := f.parent.Extend("Late", resource.WithToJSON(func(m *resource.Model, o resource.Options) resource.Attributes {
		return m.Attributes()
	}))
	require.NoError(t, e.icp.Sync(e.reg))
	assert.Equal(t, []string{resource.HookToJSON}, e.icp.Patched(late))

	m, err := late.New(resource.Attributes{"one": map[string]any{"foo": "bar"}})
	require.NoError(t, err)
	assert.Equal(t, resource.Attributes{"foo": "bar"}, m.ToJSON()["one"])
}

func TestInterceptor_Accessors(t *testing.T) {
	e := newEngine(t)
	f := newFixture()
	sub := f.parent.Extend("Sub")
	e.declare(t, f.parent, f.rels())

	assert.Equal(t, []string{"manies", "one"}, f.parent.OwnAccessors())
	assert.Empty(t, sub.OwnAccessors())

	m, err := sub.New(nil)
	require.NoError(t, err)
	get, ok := m.Accessor("one")
	require.True(t, ok)
	assert.Same(t, m.Child("one"), get())
}

func TestExtensions_InitializeSeedsEmptyChildren(t *testing.T) {
	e := newEngine(t)
	f := newFixture()
	var seen []any
	withInit := f.parent.Extend("WithInit", resource.WithInitialize(func(m *resource.Model, _ resource.Attributes, _ resource.Options) error {
		seen = append(seen, m.Get("one"))
		return nil
	}))
	e.declare(t, f.parent, f.rels())

	m, err := withInit.New(nil)
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.True(t, f.one.IsInstance(seen[0]), "children exist before the original initializer runs")
	assert.True(t, f.manies.IsInstance(m.Get("manies")))
}

func TestExtensions_ParseCombinesDefaults(t *testing.T) {
	e := newEngine(t)
	f := newFixture()
	withDefaults := f.parent.Extend("WithDefaults", resource.WithDefaults(resource.Attributes{
		"one": map[string]any{"foo": "default"},
	}))
	e.declare(t, f.parent, f.rels())

	m, err := withDefaults.New(resource.Attributes{"name": "x"}, resource.Options{Parse: true})
	require.NoError(t, err)
	assert.Equal(t, "default", m.Child("one").Get("foo"))

	child := m.Child("one")
	parsed, err := m.Parse(resource.Attributes{"one": map[string]any{"foo": "fetched"}})
	require.NoError(t, err)
	assert.NotContains(t, parsed, "one", "merged into the live child")
	assert.Equal(t, "x", parsed["name"])
	assert.Same(t, child, m.Child("one"))
	assert.Equal(t, "fetched", child.Get("foo"))
}

func TestExtensions_ToJSONPassesOptions(t *testing.T) {
	e := newEngine(t)
	echo := resource.Base.Extend("Echo", resource.WithToJSON(func(_ *resource.Model, o resource.Options) resource.Attributes {
		return resource.Attributes(o.Extra)
	}))
	parent := resource.Base.Extend("EchoParent")
	e.declare(t, parent, apis.Relationships{"child": {Type: echo}})

	m, err := parent.New(nil)
	require.NoError(t, err)
	extra := map[string]any{"verbose": true}
	out := m.ToJSON(resource.Options{Extra: extra})
	assert.Equal(t, resource.Attributes(extra), out["child"])
}

func TestExtensions_MaxDepthStopsRecursiveSeeding(t *testing.T) {
	e := newEngine(t, config.WithMaxDepth(4))
	a := resource.Base.Extend("A")
	b := resource.Base.Extend("B")
	e.declare(t, a, apis.Relationships{"b": {Type: b}})
	e.declare(t, b, apis.Relationships{"a": {Type: a}})

	_, err := a.New(nil)
	require.ErrorIs(t, err, apis.ErrMaxDepth)
}
