package hints

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/pablor21/typelens/annotation"
	"github.com/pablor21/typelens/logger"
)

// Param declares one parameter of a registered signature. A nil Type
// means the parameter has no annotation; use annotation.NoneType to
// annotate it as None.
type Param struct {
	Name       string
	Type       any
	Default    any
	HasDefault bool
	Variadic   bool
}

// Signature is a declaration registered for a callable or a type
type Signature struct {
	Params []Param
	// Return is the return annotation, nil when undeclared
	Return any
	// Namespace holds names visible to forward references of this
	// declaration only. It shadows the registry-wide namespace.
	Namespace map[string]any
}

// Registry is a Resolver fed with declarations at runtime. Targets without
// a declaration are read through reflection: funcs get positional names
// (arg0, arg1, ...) and struct types expose their exported fields.
type Registry struct {
	mu        sync.RWMutex
	decls     map[string]*Signature
	namespace map[string]any
	logger    logger.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(log logger.Logger) *Registry {
	if log == nil {
		log = logger.NewDefaultLogger()
	}
	log.SetTag("Registry")
	return &Registry{
		decls:     make(map[string]*Signature),
		namespace: make(map[string]any),
		logger:    log,
	}
}

// Register declares the signature of fn (a func, a reflect.Type or a Symbol)
func (r *Registry) Register(fn any, sig Signature) error {
	sym, ok := SymbolOf(fn)
	if !ok {
		return fmt.Errorf("cannot register %v: %w", fn, unsupported(fn))
	}
	r.RegisterSymbol(sym, sig)
	return nil
}

// RegisterSymbol declares the signature of the declaration named sym
func (r *Registry) RegisterSymbol(sym string, sig Signature) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := sig
	cp.Params = append([]Param(nil), sig.Params...)
	r.decls[sym] = &cp
	r.logger.Debug(fmt.Sprintf("Registered %s with %d parameters", sym, len(sig.Params)))
}

// Define binds name in the registry-wide namespace used to resolve
// forward references.
func (r *Registry) Define(name string, a any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespace[name] = a
}

func (r *Registry) lookup(target any) (*Signature, Namespace) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	global := make(map[string]any, len(r.namespace))
	for k, v := range r.namespace {
		global[k] = v
	}

	sym, ok := SymbolOf(target)
	if !ok {
		return nil, Namespace{global}
	}
	sig, ok := r.decls[sym]
	if !ok {
		return nil, Namespace{global}
	}
	return sig, Namespace{sig.Namespace, global}
}

// ResolveHints implements Resolver
func (r *Registry) ResolveHints(target any, includeExtras bool) (map[string]any, error) {
	sig, ns := r.lookup(target)

	var raw map[string]any
	if sig != nil {
		raw = make(map[string]any, len(sig.Params)+1)
		for _, p := range sig.Params {
			if p.Type != nil {
				raw[p.Name] = p.Type
			}
		}
		if sig.Return != nil {
			raw[ReturnKey] = sig.Return
		}
	} else {
		var err error
		raw, err = reflectHints(target)
		if err != nil {
			return nil, err
		}
		r.logger.Debug(fmt.Sprintf("No declaration for %v, using reflection", target))
	}

	hints := make(map[string]any, len(raw))
	for name, a := range raw {
		a = ns.Resolve(a)
		if !includeExtras {
			a = annotation.StripExtras(a)
		}
		hints[name] = a
	}
	return hints, nil
}

// Parameters implements Resolver
func (r *Registry) Parameters(c Callable) ([]Parameter, error) {
	sig, _ := r.lookup(c.Target)
	if sig != nil {
		params := make([]Parameter, len(sig.Params))
		for i, p := range sig.Params {
			params[i] = Parameter{Name: p.Name, Default: p.Default, HasDefault: p.HasDefault, Variadic: p.Variadic}
		}
		return params, nil
	}

	params, err := reflectParameters(c.Target)
	if err != nil {
		return nil, err
	}
	if c.DropsReceiver() && len(params) > 0 {
		params = params[1:]
	}
	return params, nil
}

func reflectHints(target any) (map[string]any, error) {
	switch t := target.(type) {
	case Symbol:
		return nil, notFound(t)
	case reflect.Type:
		hints := make(map[string]any)
		st := t
		for st.Kind() == reflect.Pointer {
			st = st.Elem()
		}
		if st.Kind() != reflect.Struct {
			return hints, nil
		}
		for _, f := range reflect.VisibleFields(st) {
			if !f.IsExported() || f.Anonymous {
				continue
			}
			a := annotation.FromReflect(f.Type)
			if f.Tag != "" {
				a = annotation.Annotated(a, string(f.Tag))
			}
			hints[f.Name] = a
		}
		return hints, nil
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Func {
		return nil, unsupported(target)
	}
	ft := rv.Type()
	hints := make(map[string]any, ft.NumIn()+1)
	for i := 0; i < ft.NumIn(); i++ {
		in := ft.In(i)
		if ft.IsVariadic() && i == ft.NumIn()-1 {
			in = in.Elem()
		}
		hints[positionalName(i)] = annotation.FromReflect(in)
	}
	results := make([]any, ft.NumOut())
	for i := range results {
		results[i] = annotation.FromReflect(ft.Out(i))
	}
	if ret := annotation.ReturnOf(results); ret != nil {
		hints[ReturnKey] = ret
	}
	return hints, nil
}

func reflectParameters(target any) ([]Parameter, error) {
	switch t := target.(type) {
	case Symbol:
		return nil, notFound(t)
	case reflect.Type:
		st := t
		for st.Kind() == reflect.Pointer {
			st = st.Elem()
		}
		if st.Kind() != reflect.Struct {
			return nil, nil
		}
		var params []Parameter
		for _, f := range reflect.VisibleFields(st) {
			if !f.IsExported() || f.Anonymous {
				continue
			}
			params = append(params, Parameter{Name: f.Name})
		}
		return params, nil
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Func {
		return nil, unsupported(target)
	}
	ft := rv.Type()
	params := make([]Parameter, ft.NumIn())
	for i := range params {
		params[i] = Parameter{
			Name:     positionalName(i),
			Variadic: ft.IsVariadic() && i == ft.NumIn()-1,
		}
	}
	return params, nil
}

func positionalName(i int) string {
	return fmt.Sprintf("arg%d", i)
}
