package typelens

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/pablor21/typelens/annotation"
	"github.com/pablor21/typelens/hints"
	"github.com/pablor21/typelens/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jump(foo int) int {
	return foo
}

func wander(foo any) {}

func board(ship string, crew ...int) (bool, error) {
	return true, nil
}

type droid struct{}

func (d *droid) Beep(times int) string {
	return ""
}

type translator struct{}

func (translator) Call(phrase string) string {
	return phrase
}

type starship struct {
	Name  string `json:"name"`
	Crew  int
	cargo []string
}

func newRegistry() *hints.Registry {
	return hints.NewRegistry(logger.NewNopLogger())
}

func TestParameterView(t *testing.T) {
	typeHints := map[string]any{"foo": annotation.Int}

	p := NewParameterView(hints.Parameter{Name: "foo"}, typeHints)
	assert.Equal(t, "foo", p.Name())
	assert.True(t, p.HasAnnotation())
	assert.False(t, p.HasDefault())
	assert.True(t, IsEmpty(p.Default()))
	assert.True(t, p.TypeView().Equal(NewTypeView(annotation.Int)))
	assert.Equal(t, "ParameterView(foo: int)", p.String())

	withNil := NewParameterView(hints.Parameter{Name: "foo", HasDefault: true}, typeHints)
	assert.True(t, withNil.HasDefault())
	assert.Nil(t, withNil.Default())
	assert.False(t, p.Equal(withNil))

	withValue := NewParameterView(hints.Parameter{Name: "foo", Default: 3, HasDefault: true}, typeHints)
	assert.Equal(t, "ParameterView(foo: int = 3)", withValue.String())

	missing := NewParameterView(hints.Parameter{Name: "bar"}, typeHints)
	assert.False(t, missing.HasAnnotation())
	assert.True(t, missing.TypeView().Equal(NewTypeView(annotation.Any)))

	assert.True(t, p.Equal(NewParameterView(hints.Parameter{Name: "foo"}, typeHints)))
}

func TestParameterViewStrict(t *testing.T) {
	_, err := NewParameterViewStrict(hints.Parameter{Name: "bar"}, map[string]any{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingAnnotation))

	var missing *MissingAnnotationError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "bar", missing.Parameter)

	p, err := NewParameterViewStrict(hints.Parameter{Name: "bar"}, map[string]any{"bar": annotation.Any})
	require.NoError(t, err)
	assert.True(t, p.HasAnnotation())
}

func TestCallableView_Annotated(t *testing.T) {
	reg := newRegistry()
	require.NoError(t, reg.Register(jump, hints.Signature{
		Params: []hints.Param{{Name: "foo", Type: annotation.Int}},
		Return: annotation.Int,
	}))

	v, err := NewCallableView(jump, WithResolver(reg))
	require.NoError(t, err)
	assert.Equal(t, hints.FormFunction, v.Form())
	require.Len(t, v.Parameters(), 1)

	foo := v.Parameters()[0]
	assert.Equal(t, "foo", foo.Name())
	assert.True(t, foo.TypeView().Equal(NewTypeView(annotation.Int)))
	assert.False(t, foo.HasDefault())
	assert.True(t, v.ReturnType().Equal(NewTypeView(annotation.Int)))

	assert.Equal(t, "github.com/pablor21/typelens.jump", v.Name())
	assert.Equal(t, "CallableView(github.com/pablor21/typelens.jump(ParameterView(foo: int)) -> int)", v.String())
}

func TestCallableView_Unannotated(t *testing.T) {
	reg := newRegistry()
	require.NoError(t, reg.Register(wander, hints.Signature{
		Params: []hints.Param{{Name: "foo"}},
	}))

	v, err := NewCallableView(wander, WithResolver(reg))
	require.NoError(t, err)
	foo, ok := v.Parameter("foo")
	require.True(t, ok)
	assert.False(t, foo.HasAnnotation())
	assert.True(t, foo.TypeView().Equal(NewTypeView(annotation.Any)))
	assert.True(t, v.ReturnType().IsNoneType())
	assert.Same(t, annotation.NoneType, v.ReturnType().Annotation())

	_, err = NewCallableView(wander, WithResolver(reg), WithStrictAnnotations(true))
	assert.True(t, errors.Is(err, ErrMissingAnnotation))
}

func TestCallableView_Invalid(t *testing.T) {
	for _, value := range []any{42, "jump", struct{ Name string }{"x"}, nil, (func())(nil)} {
		_, err := NewCallableView(value)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidCallable))
		assert.Regexp(t, `is not a valid callable\.$`, err.Error())
	}

	_, err := NewCallableView(42)
	assert.EqualError(t, err, "42 is not a valid callable.")
}

func TestCallableView_Reflection(t *testing.T) {
	v, err := NewCallableView(board, WithResolver(newRegistry()))
	require.NoError(t, err)

	params := v.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "arg0", params[0].Name())
	assert.Same(t, annotation.Str, params[0].TypeView().Annotation())
	assert.True(t, params[1].Variadic())
	assert.Same(t, annotation.Int, params[1].TypeView().Annotation())

	ret := v.ReturnType()
	assert.True(t, ret.IsTuple())
	assert.Equal(t, "tuple[bool, error]", ret.ReprType())
}

func TestCallableView_DefaultRegistry(t *testing.T) {
	v, err := NewCallableView(jump)
	require.NoError(t, err)
	require.Len(t, v.Parameters(), 1)
	assert.Equal(t, "arg0", v.Parameters()[0].Name())
}

func TestCallableView_ForwardReferences(t *testing.T) {
	reg := newRegistry()
	reg.Define("Ship", annotation.Str)
	require.NoError(t, reg.Register(board, hints.Signature{
		Params: []hints.Param{
			{Name: "ship", Type: "Ship"},
			{Name: "crew", Type: annotation.Optional("Crew"), Variadic: true},
		},
		Return:    annotation.List.Of("Ship"),
		Namespace: map[string]any{"Crew": annotation.Int},
	}))

	v, err := NewCallableView(board, WithResolver(reg))
	require.NoError(t, err)

	ship, _ := v.Parameter("ship")
	assert.Same(t, annotation.Str, ship.TypeView().Annotation())
	crew, _ := v.Parameter("crew")
	assert.True(t, crew.TypeView().Equal(NewTypeView(annotation.Optional(annotation.Int))))
	assert.True(t, v.ReturnType().Equal(NewTypeView(annotation.List.Of(annotation.Str))))
}

func TestCallableView_BoundMethod(t *testing.T) {
	beep, ok := hints.Method(&droid{}, "Beep")
	require.True(t, ok)

	v, err := NewCallableView(beep, WithResolver(newRegistry()))
	require.NoError(t, err)
	assert.Equal(t, hints.FormBoundMethod, v.Form())

	params := v.Parameters()
	require.Len(t, params, 1)
	assert.Same(t, annotation.Int, params[0].TypeView().Annotation())
	assert.Same(t, annotation.Str, v.ReturnType().Annotation())
}

func TestCallableView_CallProtocol(t *testing.T) {
	v, err := NewCallableView(translator{}, WithResolver(newRegistry()))
	require.NoError(t, err)
	assert.Equal(t, hints.FormCallProtocol, v.Form())

	params := v.Parameters()
	require.Len(t, params, 1)
	assert.Same(t, annotation.Str, params[0].TypeView().Annotation())
	assert.Same(t, annotation.Str, v.ReturnType().Annotation())
}

func TestCallableView_Type(t *testing.T) {
	typ := reflect.TypeOf(starship{})

	v, err := NewCallableView(typ, WithResolver(newRegistry()))
	require.NoError(t, err)
	assert.Equal(t, hints.FormType, v.Form())

	params := v.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "Name", params[0].Name())
	assert.False(t, params[0].TypeView().IsAnnotated())
	assert.Equal(t, "Crew", params[1].Name())

	extras, err := NewCallableView(typ, WithResolver(newRegistry()), WithIncludeExtras(true))
	require.NoError(t, err)
	name, _ := extras.Parameter("Name")
	assert.True(t, name.TypeView().IsAnnotated())
	assert.Equal(t, []any{`json:"name"`}, name.TypeView().Metadata())
	assert.Same(t, annotation.Str, name.TypeView().Annotation())
}

func TestCallableView_Equal(t *testing.T) {
	reg := newRegistry()
	a, err := NewCallableView(jump, WithResolver(reg))
	require.NoError(t, err)
	b, err := NewCallableView(jump, WithResolver(reg))
	require.NoError(t, err)
	c, err := NewCallableView(wander, WithResolver(reg))
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestCallableView_Serialize(t *testing.T) {
	reg := newRegistry()
	require.NoError(t, reg.Register(jump, hints.Signature{
		Params: []hints.Param{{Name: "foo", Type: annotation.Optional(annotation.Int), Default: nil, HasDefault: true}},
		Return: annotation.Mapping.Of(annotation.Str, annotation.Int),
	}))
	v, err := NewCallableView(jump, WithResolver(reg))
	require.NoError(t, err)

	s, ok := v.Serialize().(SerializedCallable)
	require.True(t, ok)
	assert.Equal(t, "function", s.Form)
	require.Len(t, s.Parameters, 1)

	foo := s.Parameters[0]
	assert.Equal(t, "foo", foo.Name)
	assert.True(t, foo.HasDefault)
	assert.Equal(t, "None", foo.Default)
	assert.True(t, foo.Type.Optional)
	assert.Equal(t, "Union[int, None]", foo.Type.Repr)

	assert.Equal(t, "Mapping", s.ReturnType.Origin)
	assert.Equal(t, "dict", s.ReturnType.InstantiableOrigin)

	data, err := json.Marshal(v.Serialize())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"return_type":{"repr":"Mapping[str, int]"`)
}
