package typelens

type emptyType struct{}

func (emptyType) String() string {
	return "<empty>"
}

// Empty marks a parameter without a default value. It is distinct from
// every real default, nil included.
var Empty any = emptyType{}

// IsEmpty reports whether v is the Empty marker
func IsEmpty(v any) bool {
	_, ok := v.(emptyType)
	return ok
}
