package typelens

import (
	"fmt"

	"github.com/pablor21/typelens/annotation"
	"github.com/pablor21/typelens/hints"
)

// ParameterView is one declared parameter of a callable
type ParameterView struct {
	name          string
	typeView      *TypeView
	defaultValue  any
	hasAnnotation bool
	variadic      bool
}

// NewParameterView builds the view of p using the resolved hints of its
// callable. A parameter missing from typeHints is unconstrained: its type
// view is the view of Any and HasAnnotation reports false.
func NewParameterView(p hints.Parameter, typeHints map[string]any) *ParameterView {
	pv := &ParameterView{
		name:         p.Name,
		defaultValue: Empty,
		variadic:     p.Variadic,
	}
	if p.HasDefault {
		pv.defaultValue = p.Default
	}

	if a, ok := typeHints[p.Name]; ok {
		pv.typeView = NewTypeView(a)
		pv.hasAnnotation = true
	} else {
		pv.typeView = NewTypeView(annotation.Any)
	}
	return pv
}

// NewParameterViewStrict is NewParameterView failing with a
// *MissingAnnotationError when p has no annotation.
func NewParameterViewStrict(p hints.Parameter, typeHints map[string]any) (*ParameterView, error) {
	if _, ok := typeHints[p.Name]; !ok {
		return nil, &MissingAnnotationError{Parameter: p.Name}
	}
	return NewParameterView(p, typeHints), nil
}

func (p *ParameterView) Name() string {
	return p.name
}

func (p *ParameterView) TypeView() *TypeView {
	return p.typeView
}

// Default returns the default value, or Empty when there is none
func (p *ParameterView) Default() any {
	return p.defaultValue
}

func (p *ParameterView) HasDefault() bool {
	return !IsEmpty(p.defaultValue)
}

// HasAnnotation reports whether the parameter was declared with an
// annotation, even an unconstrained one.
func (p *ParameterView) HasAnnotation() bool {
	return p.hasAnnotation
}

// Variadic reports whether the parameter collects the remaining arguments
func (p *ParameterView) Variadic() bool {
	return p.variadic
}

// Equal compares name, type view, default and annotation presence
func (p *ParameterView) Equal(other *ParameterView) bool {
	if p == other {
		return true
	}
	if p == nil || other == nil {
		return false
	}
	return p.name == other.name &&
		p.hasAnnotation == other.hasAnnotation &&
		p.variadic == other.variadic &&
		p.typeView.Equal(other.typeView) &&
		annotation.Equal(p.defaultValue, other.defaultValue)
}

func (p *ParameterView) String() string {
	s := fmt.Sprintf("ParameterView(%s: %s", p.name, p.typeView.ReprType())
	if p.HasDefault() {
		s += " = " + annotation.Repr(p.defaultValue)
	}
	return s + ")"
}
