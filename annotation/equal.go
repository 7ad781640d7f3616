package annotation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/hashstructure/v2"
)

// Equal reports whether two annotations are structurally equal. Kinds,
// special forms and type variables compare by identity, generics by head
// and arguments, everything else by deep equality.
func Equal(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return isNil(b)
	case *Kind, *SpecialForm, *TypeVar, *GenericForm:
		return a == b
	case *Generic:
		if x == nil {
			return isNil(b)
		}
		y, ok := b.(*Generic)
		if !ok || y == nil {
			return false
		}
		if x == y {
			return true
		}
		return Equal(x.origin, y.origin) && equalArgs(x.args, y.args)
	case []any:
		y, ok := b.([]any)
		return ok && equalArgs(x, y)
	}
	switch b.(type) {
	case nil, *Kind, *SpecialForm, *TypeVar, *GenericForm, *Generic, []any:
		return false
	}
	// funcs are never deeply equal, compare their code
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.Func || rb.Kind() == reflect.Func {
		return ra.Type() == rb.Type() && ra.Pointer() == rb.Pointer()
	}
	return reflect.DeepEqual(a, b)
}

// isNil reports whether a is nil or a nil *Generic
func isNil(a any) bool {
	if a == nil {
		return true
	}
	g, ok := a.(*Generic)
	return ok && g == nil
}

func equalArgs(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// HeadName returns the display name of a generic head
func HeadName(origin any) string {
	switch o := origin.(type) {
	case nil:
		return ""
	case *Kind:
		return o.Name()
	case *SpecialForm:
		if IsUnionHead(o) {
			return UnionForm.name
		}
		return o.name
	}
	return Repr(origin)
}

// Repr renders an annotation as text, e.g. "dict[str, list[int]]".
func Repr(a any) string {
	switch x := a.(type) {
	case nil:
		return "None"
	case *Kind:
		if x == NoneType {
			return "None"
		}
		return x.Name()
	case *SpecialForm:
		return x.name
	case *TypeVar:
		return x.String()
	case *GenericForm:
		return x.name
	case ForwardRef:
		return x.String()
	case ellipsis:
		return "..."
	case string:
		return quote(x)
	case []any:
		return "[" + joinRepr(x) + "]"
	case *Generic:
		if x == nil {
			return "None"
		}
		if len(x.args) == 0 {
			return HeadName(x.origin)
		}
		return HeadName(x.origin) + "[" + joinRepr(x.args) + "]"
	}
	return fmt.Sprintf("%#v", a)
}

func joinRepr(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = Repr(a)
	}
	return strings.Join(parts, ", ")
}

func quote(s string) string {
	return strconv.Quote(s)
}

// Key returns a string that identifies a, metadata included, so it can be
// used to cache views. ok is false when some leaf value cannot be hashed.
func Key(a any) (key string, ok bool) {
	var sb strings.Builder
	if err := writeKey(&sb, a); err != nil {
		return "", false
	}
	return sb.String(), true
}

func writeKey(sb *strings.Builder, a any) error {
	switch x := a.(type) {
	case nil:
		sb.WriteString("none")
	case *Kind, *SpecialForm, *TypeVar, *GenericForm:
		fmt.Fprintf(sb, "%T%p", x, x)
	case ellipsis:
		sb.WriteString("...")
	case ForwardRef:
		sb.WriteString("ref:" + quote(x.Name))
	case []any:
		sb.WriteByte('[')
		for i, arg := range x {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := writeKey(sb, arg); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
	case *Generic:
		if x == nil {
			sb.WriteString("none")
			return nil
		}
		if err := writeKey(sb, x.origin); err != nil {
			return err
		}
		return writeKey(sb, x.args)
	default:
		h, err := hashstructure.Hash(a, hashstructure.FormatV2, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "%T:%x", a, h)
	}
	return nil
}
