package typelens

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pablor21/typelens/annotation"
	"github.com/pablor21/typelens/hints"
	"github.com/pablor21/typelens/logger"
)

// DefaultRegistry resolves hints when no resolver is given. Declarations
// registered here are visible to every CallableView built without
// WithResolver.
var DefaultRegistry = hints.NewRegistry(logger.NewNopLogger())

type callableOptions struct {
	resolver      hints.Resolver
	includeExtras bool
	strict        bool
}

// CallableOption configures NewCallableView
type CallableOption func(*callableOptions)

// WithResolver sets the resolver used to read hints and parameters
func WithResolver(r hints.Resolver) CallableOption {
	return func(o *callableOptions) {
		o.resolver = r
	}
}

// WithIncludeExtras keeps qualifier wrappers (Annotated, Required, ...) in
// the resolved hints.
func WithIncludeExtras(include bool) CallableOption {
	return func(o *callableOptions) {
		o.includeExtras = include
	}
}

// WithStrictAnnotations makes parameters without annotation an error
// instead of unconstrained.
func WithStrictAnnotations(strict bool) CallableOption {
	return func(o *callableOptions) {
		o.strict = strict
	}
}

// CallableView is the signature of a callable: its parameters in
// declaration order and its return type.
type CallableView struct {
	callable   any
	form       hints.Form
	parameters []*ParameterView
	returnType *TypeView
}

// NewCallableView inspects fn. fn may be a func, a reflect.Type, a
// hints.Symbol, a hints.Bound or any value with an exported Call method.
// Any other value yields an *InvalidCallableError.
func NewCallableView(fn any, opts ...CallableOption) (*CallableView, error) {
	o := callableOptions{resolver: DefaultRegistry}
	for _, opt := range opts {
		opt(&o)
	}

	c, ok := hints.Classify(fn)
	if !ok {
		return nil, &InvalidCallableError{Value: fn}
	}

	typeHints, err := o.resolver.ResolveHints(c.Target, o.includeExtras)
	if err != nil {
		return nil, fmt.Errorf("resolving hints of %v: %w", fn, err)
	}
	ret, hasReturn := typeHints[hints.ReturnKey]
	if hasReturn {
		// copy before removing the return entry
		rest := make(map[string]any, len(typeHints))
		for k, v := range typeHints {
			if k != hints.ReturnKey {
				rest[k] = v
			}
		}
		typeHints = rest
	} else {
		ret = annotation.NoneType
	}

	declared, err := o.resolver.Parameters(c)
	if err != nil {
		return nil, fmt.Errorf("reading parameters of %v: %w", fn, err)
	}

	params := make([]*ParameterView, len(declared))
	for i, p := range declared {
		if o.strict {
			params[i], err = NewParameterViewStrict(p, typeHints)
			if err != nil {
				return nil, err
			}
			continue
		}
		params[i] = NewParameterView(p, typeHints)
	}

	return &CallableView{
		callable:   fn,
		form:       c.Form,
		parameters: params,
		returnType: NewTypeView(ret),
	}, nil
}

// Callable returns the value the view was built from
func (c *CallableView) Callable() any {
	return c.callable
}

// Form returns how the callable was recognised
func (c *CallableView) Form() hints.Form {
	return c.form
}

func (c *CallableView) Parameters() []*ParameterView {
	out := make([]*ParameterView, len(c.parameters))
	copy(out, c.parameters)
	return out
}

// Parameter returns the parameter called name
func (c *CallableView) Parameter(name string) (*ParameterView, bool) {
	for _, p := range c.parameters {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

// ReturnType returns the view of the return annotation, the view of None
// when the callable declares none.
func (c *CallableView) ReturnType() *TypeView {
	return c.returnType
}

// Name returns the qualified name of the callable when it has one
func (c *CallableView) Name() string {
	if sym, ok := hints.SymbolOf(c.callable); ok {
		return sym
	}
	if b, ok := c.callable.(hints.Bound); ok {
		if sym, ok := hints.SymbolOf(b.Unbound()); ok {
			return sym
		}
	}
	return fmt.Sprintf("%T", c.callable)
}

// Equal reports whether both views describe the same callable with equal
// parameters and return types.
func (c *CallableView) Equal(other *CallableView) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil {
		return false
	}
	if !sameCallable(c.callable, other.callable) || len(c.parameters) != len(other.parameters) {
		return false
	}
	for i := range c.parameters {
		if !c.parameters[i].Equal(other.parameters[i]) {
			return false
		}
	}
	return c.returnType.Equal(other.returnType)
}

func (c *CallableView) String() string {
	parts := make([]string, len(c.parameters))
	for i, p := range c.parameters {
		parts[i] = p.String()
	}
	return fmt.Sprintf("CallableView(%s(%s) -> %s)", c.Name(), strings.Join(parts, ", "), c.returnType.ReprType())
}

// sameCallable compares callables by identity. Funcs are not comparable,
// so they compare by code pointer.
func sameCallable(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !ra.IsValid() || !rb.IsValid() {
		return !ra.IsValid() && !rb.IsValid()
	}
	if ra.Type() != rb.Type() {
		return false
	}
	if ra.Kind() == reflect.Func {
		return ra.Pointer() == rb.Pointer()
	}
	if !ra.Comparable() {
		return false
	}
	return ra.Equal(rb)
}
