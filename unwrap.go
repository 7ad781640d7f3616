package typelens

import (
	"strings"

	"github.com/pablor21/typelens/annotation"
)

// WrapperSet records which qualifier wrappers were found while unwrapping
type WrapperSet uint8

const (
	WrapperNone      WrapperSet = 0
	WrapperAnnotated WrapperSet = 1 << (iota - 1)
	WrapperRequired
	WrapperNotRequired
)

// Has reports whether every wrapper in w is present in s
func (s WrapperSet) Has(w WrapperSet) bool {
	return s&w == w
}

func (s WrapperSet) String() string {
	var names []string
	if s.Has(WrapperAnnotated) {
		names = append(names, "annotated")
	}
	if s.Has(WrapperRequired) {
		names = append(names, "required")
	}
	if s.Has(WrapperNotRequired) {
		names = append(names, "not_required")
	}
	return strings.Join(names, ",")
}

func wrapperFor(origin any) (WrapperSet, bool) {
	switch origin {
	case any(annotation.AnnotatedForm):
		return WrapperAnnotated, true
	case any(annotation.RequiredForm):
		return WrapperRequired, true
	case any(annotation.NotRequiredForm):
		return WrapperNotRequired, true
	}
	return WrapperNone, false
}

// Unwrap strips Annotated, Required and NotRequired layers from a. It
// returns the bare annotation, the metadata of every Annotated layer
// (outermost first) and the set of wrappers seen.
func Unwrap(a any) (core any, metadata []any, wrappers WrapperSet) {
	core = a
	for {
		w, ok := wrapperFor(annotation.Origin(core))
		if !ok {
			return core, metadata, wrappers
		}
		args := annotation.Args(core)
		if len(args) == 0 {
			return core, metadata, wrappers
		}
		wrappers |= w
		metadata = append(metadata, args[1:]...)
		core = args[0]
	}
}
