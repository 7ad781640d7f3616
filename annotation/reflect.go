package annotation

import (
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

var basicKinds = map[reflect.Kind]*Kind{
	reflect.Bool:       Bool,
	reflect.Int:        Int,
	reflect.Int8:       Int8,
	reflect.Int16:      Int16,
	reflect.Int32:      Int32,
	reflect.Int64:      Int64,
	reflect.Uint:       Uint,
	reflect.Uint8:      Uint8,
	reflect.Uint16:     Uint16,
	reflect.Uint32:     Uint32,
	reflect.Uint64:     Uint64,
	reflect.Uintptr:    Uintptr,
	reflect.Float32:    Float32,
	reflect.Float64:    Float,
	reflect.Complex64:  Complex64,
	reflect.Complex128: Complex128,
	reflect.String:     Str,
}

// BaseForGoKind returns the kind a named Go type with the given
// underlying kind should inherit from (a named slice is a list, ...).
func BaseForGoKind(k reflect.Kind) *Kind {
	if b, ok := basicKinds[k]; ok {
		return b
	}
	switch k {
	case reflect.Slice:
		return List
	case reflect.Array:
		return Tuple
	case reflect.Map:
		return Dict
	case reflect.Chan:
		return Chan
	case reflect.Func:
		return Function
	}
	return Object
}

// FromReflect converts a runtime Go type into an annotation.
//
// Named types become declared kinds (see DeclareKind), pointers become
// Optional, slices List (byte slices Bytes), arrays variadic tuples, maps
// Dict (Set for map[K]struct{}), empty interfaces Any and funcs Callable.
func FromReflect(t reflect.Type) any {
	if t == nil {
		return nil
	}
	if t == errorType {
		return Error
	}

	if t.Name() != "" && t.PkgPath() != "" {
		qualified := t.PkgPath() + "." + t.Name()
		if t.Kind() == reflect.Interface {
			return DeclareAbstractKind(qualified)
		}
		return DeclareKind(qualified, BaseForGoKind(t.Kind()))
	}

	if b, ok := basicKinds[t.Kind()]; ok {
		return b
	}

	switch t.Kind() {
	case reflect.Pointer:
		return Optional(FromReflect(t.Elem()))
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 && t.Elem().PkgPath() == "" {
			return Bytes
		}
		return List.Of(FromReflect(t.Elem()))
	case reflect.Array:
		return Tuple.Of(FromReflect(t.Elem()), Ellipsis)
	case reflect.Map:
		if t.Elem().Kind() == reflect.Struct && t.Elem().NumField() == 0 {
			return Set.Of(FromReflect(t.Key()))
		}
		return Dict.Of(FromReflect(t.Key()), FromReflect(t.Elem()))
	case reflect.Chan:
		return Chan.Of(FromReflect(t.Elem()))
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return Any
		}
		return DeclareAbstractKind(t.String())
	case reflect.Func:
		params := make([]any, t.NumIn())
		for i := range params {
			in := t.In(i)
			if t.IsVariadic() && i == t.NumIn()-1 {
				in = in.Elem()
			}
			params[i] = FromReflect(in)
		}
		return CallableOf(params, ReturnOf(results(t)))
	}
	return Object
}

func results(t reflect.Type) []any {
	out := make([]any, t.NumOut())
	for i := range out {
		out[i] = FromReflect(t.Out(i))
	}
	return out
}

// ReturnOf folds a result list into a single return annotation: nil for
// none, the result itself for one, a tuple otherwise.
func ReturnOf(results []any) any {
	switch len(results) {
	case 0:
		return nil
	case 1:
		return results[0]
	}
	return Tuple.Of(results...)
}
