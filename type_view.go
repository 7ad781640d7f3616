// Package typelens builds queryable views of type annotations.
//
// A TypeView decomposes an annotation (see package annotation) into its
// bare form, generic head, arguments and qualifier metadata, and answers
// classification questions about it. ParameterView and CallableView apply
// the same decomposition to the signature of a callable, whose hints are
// read by a hints.Resolver. Lens bundles a configuration, a resolver and a
// view cache.
package typelens

import (
	"strings"

	"github.com/pablor21/typelens/annotation"
)

// TypeView is the decomposition of one annotation: the annotation with its
// qualifier wrappers removed, its generic head and arguments, the metadata
// of the wrappers and a view for every argument. A TypeView is immutable.
type TypeView struct {
	raw                any
	annotation         any
	origin             any
	args               []any
	metadata           []any
	wrappers           WrapperSet
	innerTypes         []*TypeView
	instantiableOrigin any
	genericOrigin      *annotation.GenericForm
}

// NewTypeView builds the view of raw. It accepts any value: values that are
// not annotations (plain values, Ellipsis, forward references) get a view
// without origin nor arguments.
func NewTypeView(raw any) *TypeView {
	core, metadata, wrappers := Unwrap(raw)

	origin := annotation.Origin(core)
	var args []any
	// callable signatures are opaque
	if origin != nil && origin != any(annotation.Callable) {
		args = annotation.Args(core)
	}

	inner := make([]*TypeView, len(args))
	for i, arg := range args {
		inner[i] = NewTypeView(arg)
	}

	key := origin
	if key == nil {
		key = core
	}

	return &TypeView{
		raw:                raw,
		annotation:         core,
		origin:             origin,
		args:               args,
		metadata:           metadata,
		wrappers:           wrappers,
		innerTypes:         inner,
		instantiableOrigin: InstantiableOrigin(key),
		genericOrigin:      GenericOrigin(key),
	}
}

// Raw returns the annotation the view was built from
func (v *TypeView) Raw() any {
	return v.raw
}

// Annotation returns the annotation without qualifier wrappers
func (v *TypeView) Annotation() any {
	return v.annotation
}

// Origin returns the generic head, nil for plain annotations
func (v *TypeView) Origin() any {
	return v.origin
}

// Args returns the type arguments
func (v *TypeView) Args() []any {
	out := make([]any, len(v.args))
	copy(out, v.args)
	return out
}

// Metadata returns the Annotated metadata, outermost layer first
func (v *TypeView) Metadata() []any {
	out := make([]any, len(v.metadata))
	copy(out, v.metadata)
	return out
}

// InnerTypes returns one view per type argument
func (v *TypeView) InnerTypes() []*TypeView {
	out := make([]*TypeView, len(v.innerTypes))
	copy(out, v.innerTypes)
	return out
}

// Wrappers returns the qualifier wrappers that were removed
func (v *TypeView) Wrappers() WrapperSet {
	return v.wrappers
}

func (v *TypeView) IsAnnotated() bool {
	return v.wrappers.Has(WrapperAnnotated)
}

func (v *TypeView) IsRequired() bool {
	return v.wrappers.Has(WrapperRequired)
}

func (v *TypeView) IsNotRequired() bool {
	return v.wrappers.Has(WrapperNotRequired)
}

// InstantiableOrigin returns a constructible kind for the view's head
// (Dict for Mapping, List for Sequence, ...).
func (v *TypeView) InstantiableOrigin() any {
	return v.instantiableOrigin
}

// GenericOrigin returns the parameterisable form of the view's head, nil
// when there is none.
func (v *TypeView) GenericOrigin() *annotation.GenericForm {
	return v.genericOrigin
}

// fallbackOrigin is the generic head, or the annotation itself when it has none
func (v *TypeView) fallbackOrigin() any {
	if v.origin != nil {
		return v.origin
	}
	return v.annotation
}

func (v *TypeView) IsForwardRef() bool {
	switch v.annotation.(type) {
	case string, annotation.ForwardRef:
		return true
	}
	return false
}

func (v *TypeView) IsTypeVar() bool {
	_, ok := v.annotation.(*annotation.TypeVar)
	return ok
}

// IsUnion reports whether the head is a union, in either spelling
func (v *TypeView) IsUnion() bool {
	return annotation.IsUnionHead(v.origin)
}

// IsOptional reports whether the view is a union that admits None
func (v *TypeView) IsOptional() bool {
	if !v.IsUnion() {
		return false
	}
	for _, arg := range v.args {
		if isNone(arg) {
			return true
		}
	}
	return false
}

func (v *TypeView) IsNoneType() bool {
	return isNone(v.annotation)
}

func (v *TypeView) AllowsNone() bool {
	return v.IsOptional() || v.IsNoneType()
}

func (v *TypeView) IsLiteral() bool {
	return annotation.IsLiteralHead(v.origin)
}

func (v *TypeView) IsTuple() bool {
	return v.IsSubtypeOf(annotation.Tuple)
}

// IsVariadicTuple reports whether the view is Tuple[T, ...]
func (v *TypeView) IsVariadicTuple() bool {
	return v.IsTuple() && len(v.args) == 2 && v.args[1] == any(annotation.Ellipsis)
}

func (v *TypeView) IsCollection() bool {
	return v.IsSubtypeOf(annotation.Collection)
}

func (v *TypeView) IsMapping() bool {
	return v.IsSubtypeOf(annotation.Mapping)
}

// IsNonStringCollection is IsCollection excluding str and bytes
func (v *TypeView) IsNonStringCollection() bool {
	return v.IsCollection() && !v.IsSubtypeOf(annotation.Str, annotation.Bytes)
}

// IsSubclassOf reports whether the fallback origin is a kind inheriting
// from one of targets. Unions are never subclasses; see IsSubtypeOf.
func (v *TypeView) IsSubclassOf(targets ...*annotation.Kind) bool {
	if v.IsUnion() {
		return false
	}
	k, ok := v.fallbackOrigin().(*annotation.Kind)
	if !ok {
		return false
	}
	return k.IsSubclassOf(targets...)
}

// IsSubtypeOf is IsSubclassOf extended to unions: a union is a subtype when
// every member is. AnyStr is treated as Union[str, bytes]. Any and type
// variables are never subtypes.
func (v *TypeView) IsSubtypeOf(targets ...*annotation.Kind) bool {
	if v.IsUnion() {
		for _, inner := range v.innerTypes {
			if !inner.IsSubtypeOf(targets...) {
				return false
			}
		}
		return true
	}
	switch v.annotation {
	case any(annotation.AnyStr):
		return NewTypeView(annotation.Union(annotation.Str, annotation.Bytes)).IsSubtypeOf(targets...)
	case any(annotation.Any):
		return false
	}
	if v.IsTypeVar() {
		return false
	}
	return v.IsSubclassOf(targets...)
}

// HasInnerSubtypeOf reports whether any inner type is a subtype of targets
func (v *TypeView) HasInnerSubtypeOf(targets ...*annotation.Kind) bool {
	for _, inner := range v.innerTypes {
		if inner.IsSubtypeOf(targets...) {
			return true
		}
	}
	return false
}

// HasInnerSubclassOf reports whether any inner type is a subclass of targets
func (v *TypeView) HasInnerSubclassOf(targets ...*annotation.Kind) bool {
	for _, inner := range v.innerTypes {
		if inner.IsSubclassOf(targets...) {
			return true
		}
	}
	return false
}

// StripOptional removes None from an optional view. Views that are not
// optional are returned as is.
func (v *TypeView) StripOptional() *TypeView {
	if !v.IsOptional() {
		return v
	}

	var rest []*TypeView
	var restArgs []any
	for i, inner := range v.innerTypes {
		if inner.IsNoneType() {
			continue
		}
		rest = append(rest, inner)
		restArgs = append(restArgs, v.args[i])
	}
	if len(v.args) == 2 && len(rest) == 1 {
		return rest[0]
	}
	return NewTypeView(annotation.Rebuild(v.origin, restArgs))
}

// ReprType renders the annotation, e.g. "Union[int, list[str]]"
func (v *TypeView) ReprType() string {
	if v.origin == nil || len(v.innerTypes) == 0 {
		return annotation.Repr(v.annotation)
	}
	head := annotation.HeadName(v.origin)
	parts := make([]string, len(v.innerTypes))
	for i, inner := range v.innerTypes {
		parts[i] = inner.ReprType()
	}
	return head + "[" + strings.Join(parts, ", ") + "]"
}

// Rebuild applies the view's head to args, using the parameterisable form
// of the head when there is one. A view without head returns its
// annotation.
func (v *TypeView) Rebuild(args ...any) any {
	if v.genericOrigin != nil {
		return v.genericOrigin.Of(args...)
	}
	if v.origin == nil {
		return v.annotation
	}
	return annotation.Rebuild(v.origin, args)
}

// Equal compares views structurally. Raw annotations and metadata are
// ignored: int and Annotated[int, "x"] are equal.
func (v *TypeView) Equal(other *TypeView) bool {
	if v == other {
		return true
	}
	if v == nil || other == nil {
		return false
	}
	if v.origin == nil {
		return other.origin == nil && annotation.Equal(v.annotation, other.annotation)
	}
	if !annotation.Equal(v.origin, other.origin) || len(v.innerTypes) != len(other.innerTypes) {
		return false
	}
	for i := range v.innerTypes {
		if !v.innerTypes[i].Equal(other.innerTypes[i]) {
			return false
		}
	}
	return true
}

func (v *TypeView) String() string {
	return "TypeView(" + annotation.Repr(v.raw) + ")"
}

func isNone(a any) bool {
	if g, ok := a.(*annotation.Generic); ok && g == nil {
		return true
	}
	return a == nil || a == any(annotation.NoneType)
}
