package typelens

import (
	"fmt"
	"testing"

	"github.com/pablor21/typelens/annotation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name         string
		in           any
		wantCore     any
		wantMetadata []any
		wantWrappers WrapperSet
	}{
		{"bare", annotation.Int, annotation.Int, nil, WrapperNone},
		{"generic", annotation.List.Of(annotation.Int), annotation.List.Of(annotation.Int), nil, WrapperNone},
		{"annotated", annotation.Annotated(annotation.Int, "a", "b"), annotation.Int, []any{"a", "b"}, WrapperAnnotated},
		{"required", annotation.Required(annotation.Str), annotation.Str, nil, WrapperRequired},
		{
			"nested",
			annotation.Annotated(annotation.NotRequired(annotation.Annotated(annotation.Int, "inner")), "outer"),
			annotation.Int,
			[]any{"outer", "inner"},
			WrapperAnnotated | WrapperNotRequired,
		},
		{
			"same wrapper twice",
			annotation.Required(annotation.Required(annotation.Int)),
			annotation.Int,
			nil,
			WrapperRequired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, metadata, wrappers := Unwrap(tt.in)
			assert.True(t, annotation.Equal(tt.wantCore, core), "core %s", annotation.Repr(core))
			assert.Equal(t, tt.wantMetadata, metadata)
			assert.Equal(t, tt.wantWrappers, wrappers)

			again, metadata, wrappers := Unwrap(core)
			assert.True(t, annotation.Equal(core, again))
			assert.Empty(t, metadata)
			assert.Equal(t, WrapperNone, wrappers)
		})
	}
}

func TestWrapperSet_String(t *testing.T) {
	assert.Equal(t, "", WrapperNone.String())
	assert.Equal(t, "annotated,not_required", (WrapperAnnotated | WrapperNotRequired).String())
}

func TestTypeView_Equality(t *testing.T) {
	x := annotation.Dict.Of(annotation.Str, annotation.List.Of(annotation.Int))
	assert.True(t, NewTypeView(x).Equal(NewTypeView(x)))

	assert.True(t, NewTypeView(annotation.Optional(annotation.Int)).Equal(
		NewTypeView(annotation.Union(annotation.Int, nil))))
	assert.True(t, NewTypeView(annotation.Int).Equal(
		NewTypeView(annotation.Annotated(annotation.Int, "meta"))))
	assert.False(t, NewTypeView(annotation.Int).Equal(
		NewTypeView(annotation.List.Of(annotation.Int))))
	assert.False(t, NewTypeView(annotation.List.Of(annotation.Int)).Equal(
		NewTypeView(annotation.List.Of(annotation.Str))))
	assert.False(t, NewTypeView(annotation.Int).Equal(nil))
}

func TestTypeView_Optional(t *testing.T) {
	for _, typ := range []any{
		annotation.Int,
		annotation.List.Of(annotation.Str),
		annotation.Dict.Of(annotation.Str, annotation.Int),
		annotation.Ref("Ship"),
	} {
		t.Run(annotation.Repr(typ), func(t *testing.T) {
			v := NewTypeView(annotation.Optional(typ))
			assert.True(t, v.IsOptional())
			assert.True(t, v.AllowsNone())
			assert.True(t, v.StripOptional().Equal(NewTypeView(typ)))

			plain := NewTypeView(typ)
			assert.False(t, plain.IsOptional())
			assert.Same(t, plain, plain.StripOptional())
		})
	}

	wide := NewTypeView(annotation.Union(annotation.Int, annotation.Str, nil))
	stripped := wide.StripOptional()
	assert.True(t, stripped.Equal(NewTypeView(annotation.Union(annotation.Int, annotation.Str))))
	assert.False(t, stripped.IsOptional())

	// the operator spelling is a union too
	assert.True(t, NewTypeView(annotation.Or(annotation.Int, nil)).IsOptional())
}

func TestTypeView_NoneType(t *testing.T) {
	for _, a := range []any{nil, annotation.NoneType} {
		v := NewTypeView(a)
		assert.True(t, v.IsNoneType())
		assert.True(t, v.AllowsNone())
		assert.False(t, v.IsOptional())
	}
	assert.False(t, NewTypeView(annotation.Int).AllowsNone())
}

func TestTypeView_Subtypes(t *testing.T) {
	assert.True(t, NewTypeView(annotation.Union(annotation.Bool, annotation.Int)).IsSubtypeOf(annotation.Int))
	assert.False(t, NewTypeView(annotation.Union(annotation.Int, annotation.Str)).IsSubtypeOf(annotation.Int))
	assert.True(t, NewTypeView(annotation.Union(annotation.Int, annotation.Str)).IsSubtypeOf(annotation.Int, annotation.Str))

	// unions never are subclasses
	assert.False(t, NewTypeView(annotation.Union(annotation.Bool, annotation.Int)).IsSubclassOf(annotation.Int))

	assert.False(t, NewTypeView(annotation.List.Of(annotation.Union(annotation.Int, annotation.Str))).HasInnerSubtypeOf(annotation.Int))
	assert.True(t, NewTypeView(annotation.List.Of(annotation.Int)).HasInnerSubtypeOf(annotation.Int))
	assert.True(t, NewTypeView(annotation.Dict.Of(annotation.Str, annotation.Bool)).HasInnerSubclassOf(annotation.Int))
	assert.False(t, NewTypeView(annotation.List.Of(annotation.Union(annotation.Bool, annotation.Int))).HasInnerSubclassOf(annotation.Int))

	assert.True(t, NewTypeView(annotation.AnyStr).IsSubtypeOf(annotation.Sequence))
	assert.False(t, NewTypeView(annotation.AnyStr).IsSubtypeOf(annotation.Str))
	assert.False(t, NewTypeView(annotation.Any).IsSubtypeOf(annotation.Object))
	assert.False(t, NewTypeView(annotation.NewTypeVar("T")).IsSubtypeOf(annotation.Object))

	assert.True(t, NewTypeView(annotation.Int64).IsSubtypeOf(annotation.Int))
	assert.True(t, NewTypeView(annotation.List.Of(annotation.Int)).IsSubclassOf(annotation.Sequence))
}

func TestTypeView_Containers(t *testing.T) {
	tests := []struct {
		name                string
		a                   any
		tuple, variadic     bool
		collection, mapping bool
		nonStringCollection bool
	}{
		{"variadic tuple", annotation.Tuple.Of(annotation.Int, annotation.Ellipsis), true, true, true, false, true},
		{"fixed tuple", annotation.Tuple.Of(annotation.Int, annotation.Int), true, false, true, false, true},
		{"list", annotation.List.Of(annotation.Int), false, false, true, false, true},
		{"dict", annotation.Dict.Of(annotation.Str, annotation.Int), false, false, true, true, true},
		{"str", annotation.Str, false, false, true, false, false},
		{"bytes", annotation.Bytes, false, false, true, false, false},
		{"int", annotation.Int, false, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewTypeView(tt.a)
			assert.Equal(t, tt.tuple, v.IsTuple())
			assert.Equal(t, tt.variadic, v.IsVariadicTuple())
			assert.Equal(t, tt.collection, v.IsCollection())
			assert.Equal(t, tt.mapping, v.IsMapping())
			assert.Equal(t, tt.nonStringCollection, v.IsNonStringCollection())
		})
	}
}

func TestTypeView_AnnotatedList(t *testing.T) {
	v := NewTypeView(annotation.Annotated(annotation.List.Of(annotation.Int), "foo"))

	assert.True(t, annotation.Equal(annotation.List.Of(annotation.Int), v.Annotation()))
	assert.Same(t, annotation.List, v.Origin())
	assert.Equal(t, []any{annotation.Int}, v.Args())
	assert.Equal(t, []any{"foo"}, v.Metadata())
	assert.True(t, v.IsAnnotated())
	assert.False(t, v.IsRequired())
	require.Len(t, v.InnerTypes(), 1)
	assert.True(t, v.InnerTypes()[0].Equal(NewTypeView(annotation.Int)))
}

func TestTypeView_Placeholders(t *testing.T) {
	for _, raw := range []any{"Ship", annotation.Ref("Ship")} {
		v := NewTypeView(raw)
		assert.True(t, v.IsForwardRef())
		assert.Nil(t, v.Origin())
		assert.Empty(t, v.Args())
	}

	tv := NewTypeView(annotation.NewTypeVar("T"))
	assert.True(t, tv.IsTypeVar())
	assert.False(t, tv.IsForwardRef())

	for _, raw := range []any{annotation.Ellipsis, 42, struct{ X int }{1}} {
		v := NewTypeView(raw)
		assert.Nil(t, v.Origin())
		assert.Empty(t, v.InnerTypes())
		assert.False(t, v.IsSubtypeOf(annotation.Object))
	}

	lit := NewTypeView(annotation.Literal("light", "dark"))
	assert.True(t, lit.IsLiteral())
	assert.Equal(t, []any{"light", "dark"}, lit.Args())
}

func TestTypeView_NilGeneric(t *testing.T) {
	var g *annotation.Generic
	v := NewTypeView(g)

	assert.Nil(t, v.Origin())
	assert.True(t, v.IsNoneType())
	assert.Equal(t, "None", v.ReprType())
	assert.Equal(t, "TypeView(None)", v.String())
	assert.True(t, v.Equal(NewTypeView(nil)))
	assert.True(t, v.Equal(v))
}

func TestTypeView_BareGenericForms(t *testing.T) {
	dict := NewTypeView(annotation.GenericDict)
	assert.Same(t, annotation.Dict, dict.Origin())
	assert.Empty(t, dict.Args())
	assert.True(t, dict.IsMapping())
	assert.True(t, dict.IsCollection())
	assert.Same(t, annotation.GenericDict, dict.GenericOrigin())
	assert.Equal(t, "Dict", dict.ReprType())
	assert.True(t, annotation.Equal(annotation.Dict.Of(annotation.Str, annotation.Int),
		dict.Rebuild(annotation.Str, annotation.Int)))

	assert.True(t, NewTypeView(annotation.GenericList).IsNonStringCollection())
	assert.True(t, NewTypeView(annotation.GenericTuple).IsTuple())
	assert.False(t, NewTypeView(annotation.GenericTuple).IsVariadicTuple())
	assert.True(t, NewTypeView(annotation.GenericSet).IsSubclassOf(annotation.AbstractSet))
}

func blaster() {}

func TestTypeView_LiteralFuncReflexive(t *testing.T) {
	lit := annotation.Literal(blaster)
	assert.True(t, NewTypeView(lit).Equal(NewTypeView(lit)))
	assert.True(t, NewTypeView(lit).Equal(NewTypeView(annotation.Literal(blaster))))
}

func TestTypeView_CallableIsOpaque(t *testing.T) {
	v := NewTypeView(annotation.CallableOf([]any{annotation.Int}, annotation.Str))
	assert.Same(t, annotation.Callable, v.Origin())
	assert.Empty(t, v.Args())
	assert.Empty(t, v.InnerTypes())
	assert.True(t, v.IsSubclassOf(annotation.Callable))
}

func TestTypeView_ReprType(t *testing.T) {
	tests := []struct {
		a    any
		want string
	}{
		{annotation.Int, "int"},
		{annotation.Union(annotation.Int, annotation.List.Of(annotation.Str)), "Union[int, list[str]]"},
		{annotation.Or(annotation.Int, nil), "Union[int, None]"},
		{annotation.Annotated(annotation.Dict.Of(annotation.Str, annotation.Int), "x"), "dict[str, int]"},
		{annotation.Literal("a", 1), `Literal["a", 1]`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, NewTypeView(tt.a).ReprType())
		})
	}
	assert.Equal(t, "TypeView(int)", NewTypeView(annotation.Int).String())
}

func TestTypeView_Origins(t *testing.T) {
	mapping := NewTypeView(annotation.Mapping.Of(annotation.Str, annotation.Int))
	assert.Same(t, annotation.Dict, mapping.InstantiableOrigin())
	assert.Nil(t, mapping.GenericOrigin())

	list := NewTypeView(annotation.List.Of(annotation.Int))
	assert.Same(t, annotation.List, list.InstantiableOrigin())
	assert.Same(t, annotation.GenericList, list.GenericOrigin())
	assert.True(t, annotation.Equal(annotation.List.Of(annotation.Str), list.Rebuild(annotation.Str)))

	// without head the annotation itself is the key
	plain := NewTypeView(annotation.Sequence)
	assert.Same(t, annotation.List, plain.InstantiableOrigin())

	union := NewTypeView(annotation.Union(annotation.Int, annotation.Str))
	assert.Same(t, annotation.Int, union.Rebuild(annotation.Int))
	assert.Same(t, annotation.Int, NewTypeView(annotation.Int).Rebuild())
}

func TestTables(t *testing.T) {
	assert.Same(t, annotation.Dict, InstantiableOrigin(annotation.MutableMapping))
	assert.Same(t, annotation.Set, InstantiableOrigin(annotation.AbstractSet))
	assert.Same(t, annotation.Int, InstantiableOrigin(annotation.Int))
	assert.Equal(t, "x", InstantiableOrigin("x"))

	assert.Same(t, annotation.GenericDict, GenericOrigin(annotation.Dict))
	assert.Nil(t, GenericOrigin(annotation.Mapping))
	assert.Nil(t, GenericOrigin("x"))
}

func TestEmpty(t *testing.T) {
	assert.True(t, IsEmpty(Empty))
	assert.False(t, IsEmpty(nil))
	assert.False(t, IsEmpty(struct{}{}))
	assert.Equal(t, "<empty>", fmt.Sprint(Empty))
}
