package annotation

// Generic is a parameterised annotation: a head (a *Kind or a
// *SpecialForm) applied to arguments.
type Generic struct {
	origin any
	args   []any
}

func newGeneric(origin any, args []any) *Generic {
	cp := make([]any, len(args))
	copy(cp, args)
	return &Generic{origin: origin, args: cp}
}

// Origin returns the head of the generic
func (g *Generic) Origin() any {
	return g.origin
}

// Args returns a copy of the arguments
func (g *Generic) Args() []any {
	out := make([]any, len(g.args))
	copy(out, g.args)
	return out
}

func (g *Generic) String() string {
	return Repr(g)
}

// Origin returns the generic head of a, or nil when a is not parameterised.
// A bare GenericForm has its concrete kind as head and no arguments.
func Origin(a any) any {
	switch x := a.(type) {
	case *Generic:
		if x != nil {
			return x.origin
		}
	case *GenericForm:
		if x != nil {
			return x.origin
		}
	}
	return nil
}

// Args returns the arguments of a, or nil when a is not parameterised.
func Args(a any) []any {
	if g, ok := a.(*Generic); ok && g != nil {
		return g.Args()
	}
	return nil
}

// GenericForm is a parameterisable spelling of a concrete kind
// (List for list, Dict for dict, ...).
type GenericForm struct {
	name   string
	origin *Kind
}

func (f *GenericForm) Name() string {
	return f.name
}

// Origin returns the concrete kind the form parameterises
func (f *GenericForm) Origin() *Kind {
	return f.origin
}

// Of parameterises the form. The result has the concrete kind as origin.
func (f *GenericForm) Of(args ...any) *Generic {
	return newGeneric(f.origin, args)
}

func (f *GenericForm) String() string {
	return f.name
}

var (
	GenericList        = &GenericForm{name: "List", origin: List}
	GenericTuple       = &GenericForm{name: "Tuple", origin: Tuple}
	GenericDict        = &GenericForm{name: "Dict", origin: Dict}
	GenericSet         = &GenericForm{name: "Set", origin: Set}
	GenericFrozenSet   = &GenericForm{name: "FrozenSet", origin: FrozenSet}
	GenericDefaultDict = &GenericForm{name: "DefaultDict", origin: DefaultDict}
	GenericDeque       = &GenericForm{name: "Deque", origin: Deque}
	GenericType        = &GenericForm{name: "Type", origin: Type}
)

// Union builds Union[args...]. Nested unions are flattened, duplicates
// dropped, nil becomes NoneType. A single member is returned as is and an
// empty union is Never.
func Union(args ...any) any {
	return makeUnion(UnionForm, args)
}

// Or builds the operator spelling of a union (A | B). It normalises the
// same way Union does but keeps its own head.
func Or(args ...any) any {
	return makeUnion(UnionTypeForm, args)
}

// Optional is Union[t, NoneType]
func Optional(t any) any {
	return Union(t, NoneType)
}

func makeUnion(head *SpecialForm, args []any) any {
	var members []any
	var add func(a any)
	add = func(a any) {
		if a == nil {
			a = NoneType
		}
		if g, ok := a.(*Generic); ok && IsUnionHead(g.origin) {
			for _, m := range g.args {
				add(m)
			}
			return
		}
		for _, m := range members {
			if Equal(m, a) {
				return
			}
		}
		members = append(members, a)
	}
	for _, a := range args {
		add(a)
	}

	switch len(members) {
	case 0:
		return Never
	case 1:
		return members[0]
	}
	return &Generic{origin: head, args: members}
}

// Literal builds Literal[values...]; nested literals are flattened.
func Literal(values ...any) *Generic {
	var flat []any
	for _, v := range values {
		if g, ok := v.(*Generic); ok && IsLiteralHead(g.origin) {
			flat = append(flat, g.args...)
			continue
		}
		flat = append(flat, v)
	}
	return &Generic{origin: LiteralForm, args: flat}
}

// Annotated attaches metadata to t. Nested Annotated layers are flattened
// with the inner metadata first. Without metadata t is returned unchanged.
func Annotated(t any, metadata ...any) any {
	if len(metadata) == 0 {
		return t
	}
	if g, ok := t.(*Generic); ok && g.origin == any(AnnotatedForm) {
		args := append(g.Args(), metadata...)
		return &Generic{origin: AnnotatedForm, args: args}
	}
	args := append([]any{t}, metadata...)
	return &Generic{origin: AnnotatedForm, args: args}
}

// Required marks a field as required
func Required(t any) *Generic {
	return &Generic{origin: RequiredForm, args: []any{t}}
}

// NotRequired marks a field as optional to provide
func NotRequired(t any) *Generic {
	return &Generic{origin: NotRequiredForm, args: []any{t}}
}

// CallableOf builds Callable[[params...], ret]. A nil params slice means
// the parameters are unspecified (Callable[..., ret]).
func CallableOf(params []any, ret any) *Generic {
	var first any = Ellipsis
	if params != nil {
		cp := make([]any, len(params))
		copy(cp, params)
		first = cp
	}
	return &Generic{origin: Callable, args: []any{first, ret}}
}

// Rebuild applies origin to args again, normalising the way the matching
// constructor does (unions flatten, Annotated merges, ...).
func Rebuild(origin any, args []any) any {
	switch origin {
	case any(UnionForm):
		return Union(args...)
	case any(UnionTypeForm):
		return Or(args...)
	case any(LiteralForm):
		return Literal(args...)
	case any(AnnotatedForm):
		if len(args) == 0 {
			return nil
		}
		return Annotated(args[0], args[1:]...)
	}
	return newGeneric(origin, args)
}

// IsWrapperHead reports whether origin is a qualifier wrapper
// (Annotated, Required, NotRequired).
func IsWrapperHead(origin any) bool {
	switch origin {
	case any(AnnotatedForm), any(RequiredForm), any(NotRequiredForm):
		return true
	}
	return false
}

// StripExtras removes every qualifier wrapper from a, recursing into
// generic arguments.
func StripExtras(a any) any {
	switch x := a.(type) {
	case *Generic:
		if x == nil {
			return a
		}
		if IsWrapperHead(x.origin) {
			if len(x.args) == 0 {
				return x
			}
			return StripExtras(x.args[0])
		}
		args := make([]any, len(x.args))
		for i, arg := range x.args {
			args[i] = StripExtras(arg)
		}
		return &Generic{origin: x.origin, args: args}
	case []any:
		out := make([]any, len(x))
		for i, arg := range x {
			out[i] = StripExtras(arg)
		}
		return out
	}
	return a
}
