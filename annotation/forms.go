package annotation

// SpecialForm is a construct that only has meaning inside annotations
// (Any, Union, Literal, Annotated, ...). Special forms are compared by identity.
type SpecialForm struct {
	name string
}

// Name returns the display name of the form
func (f *SpecialForm) Name() string {
	return f.name
}

func (f *SpecialForm) String() string {
	return f.name
}

var (
	// Any is the fully unconstrained annotation
	Any = &SpecialForm{name: "Any"}
	// Never is the empty union
	Never = &SpecialForm{name: "Never"}

	// UnionForm is the head of Union[...]
	UnionForm = &SpecialForm{name: "Union"}
	// UnionTypeForm is the head of the operator spelling A | B
	UnionTypeForm = &SpecialForm{name: "UnionType"}
	// LiteralForm is the head of Literal[...]
	LiteralForm = &SpecialForm{name: "Literal"}

	// AnnotatedForm is the head of Annotated[T, metadata...]
	AnnotatedForm = &SpecialForm{name: "Annotated"}
	// RequiredForm is the head of Required[T]
	RequiredForm = &SpecialForm{name: "Required"}
	// NotRequiredForm is the head of NotRequired[T]
	NotRequiredForm = &SpecialForm{name: "NotRequired"}
)

// UnionForms lists every head that denotes a union
var UnionForms = []*SpecialForm{UnionForm, UnionTypeForm}

// LiteralForms lists every head that denotes a literal
var LiteralForms = []*SpecialForm{LiteralForm}

// IsUnionHead reports whether origin is one of the union spellings
func IsUnionHead(origin any) bool {
	for _, f := range UnionForms {
		if origin == any(f) {
			return true
		}
	}
	return false
}

// IsLiteralHead reports whether origin is one of the literal spellings
func IsLiteralHead(origin any) bool {
	for _, f := range LiteralForms {
		if origin == any(f) {
			return true
		}
	}
	return false
}

// ForwardRef is a reference by name to a type that is resolved later.
// A bare string used as an annotation is treated the same way.
type ForwardRef struct {
	Name string
}

// Ref creates a forward reference
func Ref(name string) ForwardRef {
	return ForwardRef{Name: name}
}

func (r ForwardRef) String() string {
	return "ForwardRef(" + quote(r.Name) + ")"
}

// TypeVar is an unresolved type-variable placeholder
type TypeVar struct {
	name        string
	bound       any
	constraints []any
}

// NewTypeVar creates a type variable optionally restricted to constraints
func NewTypeVar(name string, constraints ...any) *TypeVar {
	return &TypeVar{name: name, constraints: constraints}
}

// WithBound returns a copy of the type variable with an upper bound
func (tv *TypeVar) WithBound(bound any) *TypeVar {
	return &TypeVar{name: tv.name, bound: bound, constraints: tv.constraints}
}

func (tv *TypeVar) Name() string {
	return tv.name
}

func (tv *TypeVar) Bound() any {
	return tv.bound
}

func (tv *TypeVar) Constraints() []any {
	out := make([]any, len(tv.constraints))
	copy(out, tv.constraints)
	return out
}

func (tv *TypeVar) String() string {
	return "~" + tv.name
}

// AnyStr is the type variable constrained to str or bytes
var AnyStr = NewTypeVar("AnyStr", Str, Bytes)

type ellipsis struct{}

func (ellipsis) String() string {
	return "..."
}

// Ellipsis is the "..." placeholder used by variadic tuples and
// unspecified callable parameter lists.
var Ellipsis = ellipsis{}
