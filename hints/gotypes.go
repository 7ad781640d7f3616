package hints

import (
	"fmt"
	"go/types"
	"sync"

	"github.com/pablor21/typelens/annotation"
	"github.com/pablor21/typelens/logger"
)

var goBasicKinds = map[types.BasicKind]*annotation.Kind{
	types.Bool:       annotation.Bool,
	types.Int:        annotation.Int,
	types.Int8:       annotation.Int8,
	types.Int16:      annotation.Int16,
	types.Int32:      annotation.Int32,
	types.Int64:      annotation.Int64,
	types.Uint:       annotation.Uint,
	types.Uint8:      annotation.Uint8,
	types.Uint16:     annotation.Uint16,
	types.Uint32:     annotation.Uint32,
	types.Uint64:     annotation.Uint64,
	types.Uintptr:    annotation.Uintptr,
	types.Float32:    annotation.Float32,
	types.Float64:    annotation.Float,
	types.Complex64:  annotation.Complex64,
	types.Complex128: annotation.Complex128,
	types.String:     annotation.Str,
	types.UntypedNil: annotation.NoneType,
}

// GoTypeConverter converts go/types types into annotations. Named types
// become declared kinds, so a type read from source maps to the same
// *annotation.Kind as the one obtained with annotation.FromReflect.
type GoTypeConverter struct {
	mu       sync.Mutex
	typeVars map[*types.TypeParam]*annotation.TypeVar
	logger   logger.Logger
}

// NewGoTypeConverter creates a converter
func NewGoTypeConverter(log logger.Logger) *GoTypeConverter {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &GoTypeConverter{
		typeVars: make(map[*types.TypeParam]*annotation.TypeVar),
		logger:   log,
	}
}

// Convert returns the annotation for t. A nil type converts to nil.
func (c *GoTypeConverter) Convert(t types.Type) any {
	if t == nil {
		return nil
	}
	t = normalizeUntyped(t)

	switch gt := t.(type) {
	case *types.Alias:
		return c.Convert(types.Unalias(gt))

	case *types.Basic:
		if k, ok := goBasicKinds[gt.Kind()]; ok {
			return k
		}
		return annotation.Object

	case *types.Named:
		return c.convertNamed(gt)

	case *types.Pointer:
		elem, _ := deferPtr(gt)
		return annotation.Optional(c.Convert(elem))

	case *types.Slice:
		if isByte(gt.Elem()) {
			return annotation.Bytes
		}
		return annotation.List.Of(c.Convert(gt.Elem()))

	case *types.Array:
		return annotation.Tuple.Of(c.Convert(gt.Elem()), annotation.Ellipsis)

	case *types.Map:
		if isEmptyStruct(gt.Elem()) {
			return annotation.Set.Of(c.Convert(gt.Key()))
		}
		return annotation.Dict.Of(c.Convert(gt.Key()), c.Convert(gt.Elem()))

	case *types.Chan:
		return annotation.Chan.Of(c.Convert(gt.Elem()))

	case *types.Signature:
		return c.convertSignature(gt)

	case *types.Interface:
		return c.convertInterface(gt, "")

	case *types.TypeParam:
		return c.typeVar(gt)

	case *types.Union:
		return c.convertUnion(gt)

	case *types.Struct:
		// anonymous structs have no kind of their own
		return annotation.Object
	}

	c.logger.Warn(fmt.Sprintf("Unsupported type encountered: %s (%T)", t.String(), t))
	return annotation.Object
}

func (c *GoTypeConverter) convertNamed(named *types.Named) any {
	obj := named.Obj()
	if obj.Pkg() == nil {
		// predeclared: error, comparable
		switch obj.Name() {
		case "error":
			return annotation.Error
		case "comparable":
			return annotation.Any
		}
		return annotation.Object
	}

	qualified := obj.Pkg().Path() + "." + obj.Name()
	var kind *annotation.Kind
	if iface, ok := named.Underlying().(*types.Interface); ok {
		if _, isUnion := typeSetUnion(iface); isUnion {
			// constraint interfaces describe a set of types
			return c.convertInterface(iface, qualified)
		}
		kind = annotation.DeclareAbstractKind(qualified)
	} else {
		kind = annotation.DeclareKind(qualified, c.baseFor(named.Underlying()))
	}

	targs := named.TypeArgs()
	if targs == nil || targs.Len() == 0 {
		return kind
	}
	args := make([]any, targs.Len())
	for i := range args {
		args[i] = c.Convert(targs.At(i))
	}
	return kind.Of(args...)
}

// baseFor returns the kind a named type inherits from, following its
// underlying type.
func (c *GoTypeConverter) baseFor(u types.Type) *annotation.Kind {
	switch ut := u.(type) {
	case *types.Basic:
		if k, ok := goBasicKinds[ut.Kind()]; ok {
			return k
		}
	case *types.Slice:
		if isByte(ut.Elem()) {
			return annotation.Bytes
		}
		return annotation.List
	case *types.Array:
		return annotation.Tuple
	case *types.Map:
		if isEmptyStruct(ut.Elem()) {
			return annotation.Set
		}
		return annotation.Dict
	case *types.Chan:
		return annotation.Chan
	case *types.Signature:
		return annotation.Function
	}
	return annotation.Object
}

func (c *GoTypeConverter) convertSignature(sig *types.Signature) any {
	params := make([]any, sig.Params().Len())
	for i := range params {
		pt := sig.Params().At(i).Type()
		if sig.Variadic() && i == len(params)-1 {
			if s, ok := pt.(*types.Slice); ok {
				pt = s.Elem()
			}
		}
		params[i] = c.Convert(pt)
	}
	return annotation.CallableOf(params, c.ReturnOf(sig))
}

// ReturnOf folds the results of sig into a single return annotation
func (c *GoTypeConverter) ReturnOf(sig *types.Signature) any {
	results := make([]any, sig.Results().Len())
	for i := range results {
		results[i] = c.Convert(sig.Results().At(i).Type())
	}
	return annotation.ReturnOf(results)
}

func (c *GoTypeConverter) convertInterface(iface *types.Interface, name string) any {
	if u, ok := typeSetUnion(iface); ok {
		return c.convertUnion(u)
	}
	if iface.Empty() {
		return annotation.Any
	}
	if name == "" {
		name = types.TypeString(iface, func(pkg *types.Package) string { return pkg.Path() })
	}
	return annotation.DeclareAbstractKind(name)
}

func (c *GoTypeConverter) convertUnion(u *types.Union) any {
	members := make([]any, u.Len())
	for i := range members {
		members[i] = c.Convert(u.Term(i).Type())
	}
	return annotation.Union(members...)
}

func (c *GoTypeConverter) typeVar(tp *types.TypeParam) *annotation.TypeVar {
	c.mu.Lock()
	if tv, ok := c.typeVars[tp]; ok {
		c.mu.Unlock()
		return tv
	}
	// placeholder first: a constraint may mention its own parameter
	tv := annotation.NewTypeVar(tp.Obj().Name())
	c.typeVars[tp] = tv
	c.mu.Unlock()

	constraint, ok := tp.Constraint().Underlying().(*types.Interface)
	if !ok || constraint.Empty() {
		return tv
	}

	if u, ok := typeSetUnion(constraint); ok {
		members := make([]any, u.Len())
		for i := range members {
			members[i] = c.Convert(u.Term(i).Type())
		}
		tv = annotation.NewTypeVar(tp.Obj().Name(), members...)
	} else {
		tv = tv.WithBound(c.Convert(tp.Constraint()))
	}

	c.mu.Lock()
	c.typeVars[tp] = tv
	c.mu.Unlock()
	return tv
}

// typeSetUnion returns the union embedded in a constraint interface
func typeSetUnion(iface *types.Interface) (*types.Union, bool) {
	for i := 0; i < iface.NumEmbeddeds(); i++ {
		if u, ok := iface.EmbeddedType(i).(*types.Union); ok {
			return u, true
		}
	}
	return nil, false
}

func deferPtr(t types.Type) (types.Type, int) {
	count := 0
	for {
		ptr, ok := t.(*types.Pointer)
		if !ok {
			break
		}
		count++
		t = ptr.Elem()
	}
	return t, count
}

func normalizeUntyped(t types.Type) types.Type {
	if basic, ok := t.(*types.Basic); ok {
		if basic.Info()&types.IsUntyped != 0 {
			switch basic.Kind() {
			case types.UntypedInt:
				return types.Typ[types.Int]
			case types.UntypedFloat:
				return types.Typ[types.Float64]
			case types.UntypedRune:
				return types.Typ[types.Rune]
			case types.UntypedString:
				return types.Typ[types.String]
			case types.UntypedBool:
				return types.Typ[types.Bool]
			}
		}
	}
	return t
}

func isByte(t types.Type) bool {
	b, ok := t.(*types.Basic)
	return ok && b.Kind() == types.Uint8
}

func isEmptyStruct(t types.Type) bool {
	s, ok := t.(*types.Struct)
	return ok && s.NumFields() == 0
}
