// Package annotation defines the type-annotation grammar understood by
// typelens: kinds and their subclass lattice, special forms such as Union
// and Literal, qualifier wrappers, forward references, type variables and
// parameterised generics. Go types enter the grammar through FromReflect
// (runtime) or the hints package (source).
package annotation

import (
	"strings"
	"sync"
)

// Kind is a concrete or abstract type. Kinds form a lattice through their
// bases, which is what subclass checks walk.
type Kind struct {
	name     string
	pkgPath  string
	bases    []*Kind
	abstract bool
}

// Name returns the short name of the kind
func (k *Kind) Name() string {
	return k.name
}

// PkgPath returns the package that declared the kind, empty for builtins
func (k *Kind) PkgPath() string {
	return k.pkgPath
}

// QualifiedName returns pkgPath.Name, or Name for builtins
func (k *Kind) QualifiedName() string {
	if k.pkgPath == "" {
		return k.name
	}
	return k.pkgPath + "." + k.name
}

// Bases returns the direct bases of the kind
func (k *Kind) Bases() []*Kind {
	out := make([]*Kind, len(k.bases))
	copy(out, k.bases)
	return out
}

// IsAbstract reports whether the kind only describes a protocol
// (Mapping, Sequence, ...) and has no instances of its own.
func (k *Kind) IsAbstract() bool {
	return k.abstract
}

// IsSubclassOf reports whether k is one of targets or inherits from any of them.
func (k *Kind) IsSubclassOf(targets ...*Kind) bool {
	if k == nil {
		return false
	}
	for _, t := range targets {
		if t != nil && k.inherits(t, map[*Kind]bool{}) {
			return true
		}
	}
	return false
}

func (k *Kind) inherits(target *Kind, seen map[*Kind]bool) bool {
	if k == target || target == Object {
		return true
	}
	if seen[k] {
		return false
	}
	seen[k] = true
	for _, b := range k.bases {
		if b.inherits(target, seen) {
			return true
		}
	}
	return false
}

// Of parameterises the kind, e.g. List.Of(Int) is list[int].
func (k *Kind) Of(args ...any) *Generic {
	return newGeneric(k, args)
}

func (k *Kind) String() string {
	return k.QualifiedName()
}

func builtin(name string, bases ...*Kind) *Kind {
	return &Kind{name: name, bases: bases}
}

func abstractKind(name string, bases ...*Kind) *Kind {
	return &Kind{name: name, bases: bases, abstract: true}
}

// Root and scalar kinds
var (
	Object   = builtin("object")
	NoneType = builtin("NoneType", Object)
	Int      = builtin("int", Object)
	Bool     = builtin("bool", Int)
	Float    = builtin("float", Object)
	Complex  = builtin("complex", Object)
	Type     = builtin("type", Object)
	Function = builtin("function", Object)
	Error    = abstractKind("error", Object)

	// Go sized numerics are subclasses of their Python-style family so
	// that int64 is still a subtype of int.
	Int8       = builtin("int8", Int)
	Int16      = builtin("int16", Int)
	Int32      = builtin("int32", Int)
	Int64      = builtin("int64", Int)
	Uint       = builtin("uint", Int)
	Uint8      = builtin("uint8", Int)
	Uint16     = builtin("uint16", Int)
	Uint32     = builtin("uint32", Int)
	Uint64     = builtin("uint64", Int)
	Uintptr    = builtin("uintptr", Int)
	Float32    = builtin("float32", Float)
	Complex64  = builtin("complex64", Complex)
	Complex128 = builtin("complex128", Complex)
)

// Abstract container protocols
var (
	Iterable        = abstractKind("Iterable", Object)
	Container       = abstractKind("Container", Object)
	Sized           = abstractKind("Sized", Object)
	Collection      = abstractKind("Collection", Sized, Iterable, Container)
	Sequence        = abstractKind("Sequence", Collection)
	MutableSequence = abstractKind("MutableSequence", Sequence)
	AbstractSet     = abstractKind("Set", Collection)
	MutableSet      = abstractKind("MutableSet", AbstractSet)
	Mapping         = abstractKind("Mapping", Collection)
	MutableMapping  = abstractKind("MutableMapping", Mapping)
	Callable        = abstractKind("Callable", Object)
)

// Concrete containers
var (
	Str         = builtin("str", Sequence)
	Bytes       = builtin("bytes", Sequence)
	ByteArray   = builtin("bytearray", MutableSequence)
	List        = builtin("list", MutableSequence)
	Tuple       = builtin("tuple", Sequence)
	Dict        = builtin("dict", MutableMapping)
	DefaultDict = builtin("defaultdict", Dict)
	Set         = builtin("set", MutableSet)
	FrozenSet   = builtin("frozenset", AbstractSet)
	Deque       = builtin("deque", MutableSequence)
	Chan        = builtin("chan", Iterable)
)

// declared holds kinds created through DeclareKind, keyed by qualified name.
var declared = struct {
	mu    sync.RWMutex
	kinds map[string]*Kind
}{kinds: make(map[string]*Kind, 64)}

// DeclareKind returns the kind registered under qualifiedName, creating it
// with the given bases on first use. Later calls ignore bases. Runtime
// (FromReflect) and source (hints) bridges both declare named Go types
// here, so the same Go type maps to the same *Kind either way.
func DeclareKind(qualifiedName string, bases ...*Kind) *Kind {
	return declare(qualifiedName, false, bases)
}

// DeclareAbstractKind is DeclareKind for protocol-like kinds (interfaces).
func DeclareAbstractKind(qualifiedName string, bases ...*Kind) *Kind {
	return declare(qualifiedName, true, bases)
}

// LookupKind returns a previously declared kind
func LookupKind(qualifiedName string) (*Kind, bool) {
	declared.mu.RLock()
	defer declared.mu.RUnlock()
	k, ok := declared.kinds[qualifiedName]
	return k, ok
}

func declare(qualifiedName string, abstract bool, bases []*Kind) *Kind {
	declared.mu.RLock()
	if k, ok := declared.kinds[qualifiedName]; ok {
		declared.mu.RUnlock()
		return k
	}
	declared.mu.RUnlock()

	declared.mu.Lock()
	defer declared.mu.Unlock()

	// another goroutine may have declared it meanwhile
	if k, ok := declared.kinds[qualifiedName]; ok {
		return k
	}

	if len(bases) == 0 {
		bases = []*Kind{Object}
	}
	pkgPath, name := splitQualified(qualifiedName)
	k := &Kind{name: name, pkgPath: pkgPath, bases: bases, abstract: abstract}
	declared.kinds[qualifiedName] = k
	return k
}

// splitQualified splits "github.com/a/b.Name[T]" into package path and name.
func splitQualified(q string) (string, string) {
	head := q
	if i := strings.Index(head, "["); i >= 0 {
		head = head[:i]
	}
	slash := strings.LastIndex(head, "/")
	dot := strings.LastIndex(head, ".")
	if dot <= slash {
		return "", q
	}
	return q[:dot], q[dot+1:]
}
