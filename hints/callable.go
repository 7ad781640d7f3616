package hints

import (
	"reflect"
	"runtime"
	"strings"
)

// Form tells how a value was recognised as a callable
type Form uint8

const (
	FormInvalid      Form = iota
	FormFunction          // a func value
	FormType              // a reflect.Type, called like a constructor
	FormSymbol            // a Symbol naming a declaration
	FormBoundMethod       // a Bound value
	FormCallProtocol      // a value with an exported Call method
)

func (f Form) String() string {
	switch f {
	case FormFunction:
		return "function"
	case FormType:
		return "type"
	case FormSymbol:
		return "symbol"
	case FormBoundMethod:
		return "bound_method"
	case FormCallProtocol:
		return "call_protocol"
	default:
		return "invalid"
	}
}

// Symbol names a function, method or type by its qualified name, e.g.
// "github.com/acme/pkg.Func", "github.com/acme/pkg.(*T).Method" or
// "github.com/acme/pkg.T". It lets declarations be inspected without a
// runtime value.
type Symbol string

// Bound is implemented by bound-method descriptors. Unbound returns the
// underlying function whose first parameter is the receiver.
type Bound interface {
	Unbound() any
}

// Callable is the outcome of classifying a value
type Callable struct {
	Form   Form
	Value  any // the value as supplied
	Target any // what hints are resolved against
}

// DropsReceiver reports whether the declared parameters of Target include
// a receiver that the supplied value already binds.
func (c Callable) DropsReceiver() bool {
	return c.Form == FormBoundMethod
}

// Classify runs the capability probes in order: direct forms (func,
// reflect.Type, Symbol), then Bound, then an exported Call method.
func Classify(v any) (Callable, bool) {
	if v == nil {
		return Callable{Form: FormInvalid, Value: v}, false
	}

	switch x := v.(type) {
	case Symbol:
		if x == "" {
			return Callable{Form: FormInvalid, Value: v}, false
		}
		return Callable{Form: FormSymbol, Value: v, Target: v}, true
	case reflect.Type:
		return Callable{Form: FormType, Value: v, Target: v}, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Func {
		if rv.IsNil() {
			return Callable{Form: FormInvalid, Value: v}, false
		}
		return Callable{Form: FormFunction, Value: v, Target: v}, true
	}

	if b, ok := v.(Bound); ok {
		if fn := b.Unbound(); isFunc(fn) {
			return Callable{Form: FormBoundMethod, Value: v, Target: fn}, true
		}
	}

	if m := rv.MethodByName("Call"); m.IsValid() {
		return Callable{Form: FormCallProtocol, Value: v, Target: m.Interface()}, true
	}

	return Callable{Form: FormInvalid, Value: v}, false
}

func isFunc(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

type boundMethod struct {
	recv   reflect.Value
	method reflect.Method
}

func (b *boundMethod) Unbound() any {
	return b.method.Func.Interface()
}

// Receiver returns the bound receiver
func (b *boundMethod) Receiver() any {
	return b.recv.Interface()
}

// Method returns a Bound descriptor for recv's exported method name.
func Method(recv any, name string) (Bound, bool) {
	if recv == nil {
		return nil, false
	}
	rv := reflect.ValueOf(recv)
	m, ok := rv.Type().MethodByName(name)
	if !ok {
		return nil, false
	}
	return &boundMethod{recv: rv, method: m}, true
}

// SymbolOf returns the qualified name of a func, a named reflect.Type or a
// Symbol. Method values lose their "-fm" suffix so that obj.M and (*T).M
// share a symbol.
func SymbolOf(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case Symbol:
		return string(x), x != ""
	case reflect.Type:
		if x.Name() == "" {
			return "", false
		}
		if x.PkgPath() == "" {
			return x.Name(), true
		}
		return x.PkgPath() + "." + x.Name(), true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return "", false
	}
	fn := runtime.FuncForPC(rv.Pointer())
	if fn == nil {
		return "", false
	}
	return strings.TrimSuffix(fn.Name(), "-fm"), true
}

// symbolParts is a parsed symbol
type symbolParts struct {
	PkgPath  string
	Receiver string // type name of a method receiver, without '*'
	Name     string
}

// parseSymbol splits "path/pkg.(*T).M", "path/pkg.T.M", "path/pkg.F" and
// "path/pkg.T". Generic instantiation suffixes ("[...]") are dropped.
func parseSymbol(sym string) (symbolParts, bool) {
	sym = stripTypeArgs(sym)
	slash := strings.LastIndex(sym, "/")
	dot := strings.Index(sym[slash+1:], ".")
	if dot < 0 {
		return symbolParts{}, false
	}
	dot += slash + 1

	parts := symbolParts{PkgPath: sym[:dot]}
	rest := sym[dot+1:]

	if strings.HasPrefix(rest, "(") {
		end := strings.Index(rest, ")")
		if end < 0 || end+2 > len(rest) {
			return symbolParts{}, false
		}
		parts.Receiver = strings.TrimPrefix(rest[1:end], "*")
		parts.Name = rest[end+2:]
	} else if i := strings.Index(rest, "."); i >= 0 {
		parts.Receiver = rest[:i]
		parts.Name = rest[i+1:]
	} else {
		parts.Name = rest
	}

	if parts.Name == "" {
		return symbolParts{}, false
	}
	return parts, true
}

func stripTypeArgs(sym string) string {
	var sb strings.Builder
	depth := 0
	for _, r := range sym {
		switch {
		case r == '[':
			depth++
		case r == ']' && depth > 0:
			depth--
		case depth == 0:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
