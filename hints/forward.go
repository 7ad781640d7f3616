package hints

import (
	"github.com/pablor21/typelens/annotation"
)

// Namespace maps names to annotations for forward-reference resolution.
// Lookups go through the scopes in order.
type Namespace []map[string]any

func (ns Namespace) lookup(name string) (any, bool) {
	for _, scope := range ns {
		if a, ok := scope[name]; ok {
			return a, true
		}
	}
	if k, ok := annotation.LookupKind(name); ok {
		return k, true
	}
	return nil, false
}

// Resolve replaces forward references (ForwardRef values and bare strings)
// inside a with what the namespace binds them to. Unknown names, and names
// whose resolution would loop back onto themselves, stay ForwardRef.
// Literal values and Annotated metadata are never treated as references.
func (ns Namespace) Resolve(a any) any {
	return ns.resolve(a, map[string]bool{})
}

func (ns Namespace) resolve(a any, visiting map[string]bool) any {
	switch x := a.(type) {
	case string:
		return ns.resolveName(x, visiting)
	case annotation.ForwardRef:
		return ns.resolveName(x.Name, visiting)
	case []any:
		out := make([]any, len(x))
		for i, arg := range x {
			out[i] = ns.resolve(arg, visiting)
		}
		return out
	case *annotation.Generic:
		origin := x.Origin()
		args := x.Args()
		switch {
		case annotation.IsLiteralHead(origin):
			return x
		case origin == any(annotation.AnnotatedForm):
			args[0] = ns.resolve(args[0], visiting)
		default:
			for i, arg := range args {
				args[i] = ns.resolve(arg, visiting)
			}
		}
		return annotation.Rebuild(origin, args)
	}
	return a
}

func (ns Namespace) resolveName(name string, visiting map[string]bool) any {
	if visiting[name] {
		return annotation.Ref(name)
	}
	bound, ok := ns.lookup(name)
	if !ok {
		return annotation.Ref(name)
	}
	visiting[name] = true
	defer delete(visiting, name)
	return ns.resolve(bound, visiting)
}
