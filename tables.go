package typelens

import (
	"github.com/pablor21/typelens/annotation"
)

// instantiableOrigins maps abstract container kinds to a kind that can be
// built.
var instantiableOrigins = map[*annotation.Kind]*annotation.Kind{
	annotation.Mapping:         annotation.Dict,
	annotation.MutableMapping:  annotation.Dict,
	annotation.Sequence:        annotation.List,
	annotation.MutableSequence: annotation.List,
	annotation.AbstractSet:     annotation.Set,
	annotation.MutableSet:      annotation.Set,
	annotation.DefaultDict:     annotation.DefaultDict,
	annotation.Deque:           annotation.Deque,
	annotation.Dict:            annotation.Dict,
	annotation.FrozenSet:       annotation.FrozenSet,
	annotation.List:            annotation.List,
	annotation.Set:             annotation.Set,
	annotation.Tuple:           annotation.Tuple,
}

// genericOrigins maps concrete kinds to their parameterisable spelling
var genericOrigins = map[*annotation.Kind]*annotation.GenericForm{
	annotation.List:        annotation.GenericList,
	annotation.Dict:        annotation.GenericDict,
	annotation.Set:         annotation.GenericSet,
	annotation.FrozenSet:   annotation.GenericFrozenSet,
	annotation.Tuple:       annotation.GenericTuple,
	annotation.DefaultDict: annotation.GenericDefaultDict,
	annotation.Deque:       annotation.GenericDeque,
	annotation.Type:        annotation.GenericType,
}

// InstantiableOrigin returns a constructible kind for key. Keys without an
// entry are already instantiable and are returned unchanged.
func InstantiableOrigin(key any) any {
	if k, ok := key.(*annotation.Kind); ok {
		if m, ok := instantiableOrigins[k]; ok {
			return m
		}
	}
	return key
}

// GenericOrigin returns the parameterisable form of key, or nil when the
// table has no entry for it.
func GenericOrigin(key any) *annotation.GenericForm {
	if k, ok := key.(*annotation.Kind); ok {
		return genericOrigins[k]
	}
	return nil
}
