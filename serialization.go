package typelens

import (
	"github.com/pablor21/typelens/annotation"
)

// SerializedType is the serializable form of a TypeView
type SerializedType struct {
	Repr               string           `json:"repr"`
	Origin             string           `json:"origin,omitempty"`
	Args               []SerializedType `json:"args,omitempty"`
	Metadata           []string         `json:"metadata,omitempty"`
	Wrappers           string           `json:"wrappers,omitempty"`
	InstantiableOrigin string           `json:"instantiable_origin,omitempty"`
	GenericOrigin      string           `json:"generic_origin,omitempty"`
	Optional           bool             `json:"optional,omitempty"`
	Union              bool             `json:"union,omitempty"`
	Literal            bool             `json:"literal,omitempty"`
	ForwardRef         bool             `json:"forward_ref,omitempty"`
	TypeVar            bool             `json:"type_var,omitempty"`
}

// SerializedParameter is the serializable form of a ParameterView
type SerializedParameter struct {
	Name          string         `json:"name"`
	Type          SerializedType `json:"type"`
	HasAnnotation bool           `json:"has_annotation"`
	Default       string         `json:"default,omitempty"`
	HasDefault    bool           `json:"has_default"`
	Variadic      bool           `json:"variadic,omitempty"`
}

// SerializedCallable is the serializable form of a CallableView
type SerializedCallable struct {
	Name       string                `json:"name"`
	Form       string                `json:"form"`
	Parameters []SerializedParameter `json:"parameters"`
	ReturnType SerializedType        `json:"return_type"`
}

func (v *TypeView) serialize() SerializedType {
	s := SerializedType{
		Repr:       v.ReprType(),
		Optional:   v.IsOptional(),
		Union:      v.IsUnion(),
		Literal:    v.IsLiteral(),
		ForwardRef: v.IsForwardRef(),
		TypeVar:    v.IsTypeVar(),
		Wrappers:   v.wrappers.String(),
	}
	if v.origin != nil {
		s.Origin = annotation.HeadName(v.origin)
	}
	for _, inner := range v.innerTypes {
		s.Args = append(s.Args, inner.serialize())
	}
	for _, m := range v.metadata {
		s.Metadata = append(s.Metadata, annotation.Repr(m))
	}
	if k, ok := v.instantiableOrigin.(*annotation.Kind); ok && any(k) != v.fallbackOrigin() {
		s.InstantiableOrigin = k.Name()
	}
	if v.genericOrigin != nil {
		s.GenericOrigin = v.genericOrigin.Name()
	}
	return s
}

// Serialize returns a JSON-friendly representation of the view
func (v *TypeView) Serialize() any {
	return v.serialize()
}

func (p *ParameterView) serialize() SerializedParameter {
	s := SerializedParameter{
		Name:          p.name,
		Type:          p.typeView.serialize(),
		HasAnnotation: p.hasAnnotation,
		HasDefault:    p.HasDefault(),
		Variadic:      p.variadic,
	}
	if s.HasDefault {
		s.Default = annotation.Repr(p.defaultValue)
	}
	return s
}

// Serialize returns a JSON-friendly representation of the parameter
func (p *ParameterView) Serialize() any {
	return p.serialize()
}

// Serialize returns a JSON-friendly representation of the callable
func (c *CallableView) Serialize() any {
	s := SerializedCallable{
		Name:       c.Name(),
		Form:       c.form.String(),
		Parameters: make([]SerializedParameter, len(c.parameters)),
		ReturnType: c.returnType.serialize(),
	}
	for i, p := range c.parameters {
		s.Parameters[i] = p.serialize()
	}
	return s
}
