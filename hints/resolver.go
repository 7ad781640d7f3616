// Package hints resolves the annotations of callables and types.
//
// A Resolver answers two questions: which annotation each name of a target
// carries (with forward references already resolved) and which parameters
// a callable declares. Two resolvers are provided: Registry, fed with
// declarations at runtime and falling back to reflection, and
// SourceResolver, which reads declarations from Go source with go/packages.
package hints

import (
	"errors"
	"fmt"
)

// ReturnKey is the hints entry holding the return annotation
const ReturnKey = "return"

var (
	// ErrSymbolNotFound is returned when a resolver knows nothing about a target
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrUnsupportedTarget is returned for targets a resolver cannot read
	ErrUnsupportedTarget = errors.New("unsupported target")
	// ErrPackageLoad is returned when the package of a symbol cannot be loaded
	ErrPackageLoad = errors.New("package load failed")
)

// Parameter describes one declared parameter of a callable
type Parameter struct {
	Name       string `json:"name"`
	Default    any    `json:"default,omitempty"`
	HasDefault bool   `json:"has_default,omitempty"`
	Variadic   bool   `json:"variadic,omitempty"`
}

// Resolver resolves type hints and declared parameters
type Resolver interface {
	// ResolveHints maps every annotated name of target to its annotation.
	// The return annotation, when declared, is stored under ReturnKey.
	// When includeExtras is false qualifier wrappers are stripped.
	ResolveHints(target any, includeExtras bool) (map[string]any, error)
	// Parameters lists the declared parameters of c in declaration order.
	Parameters(c Callable) ([]Parameter, error)
}

func notFound(target any) error {
	return fmt.Errorf("%w: %v", ErrSymbolNotFound, target)
}

func unsupported(target any) error {
	return fmt.Errorf("%w: %T", ErrUnsupportedTarget, target)
}
