package typelens

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCallable is matched by every *InvalidCallableError
	ErrInvalidCallable = errors.New("invalid callable")
	// ErrMissingAnnotation is matched by every *MissingAnnotationError
	ErrMissingAnnotation = errors.New("missing annotation")
)

// InvalidCallableError reports a value that cannot be inspected as a callable
type InvalidCallableError struct {
	Value any
}

func (e *InvalidCallableError) Error() string {
	return fmt.Sprintf("%v is not a valid callable.", e.Value)
}

func (e *InvalidCallableError) Is(target error) bool {
	return target == ErrInvalidCallable
}

// MissingAnnotationError reports a parameter declared without annotation.
// It is only returned when annotations are required.
type MissingAnnotationError struct {
	Parameter string
}

func (e *MissingAnnotationError) Error() string {
	return fmt.Sprintf("no annotation found for parameter %q", e.Parameter)
}

func (e *MissingAnnotationError) Is(target error) bool {
	return target == ErrMissingAnnotation
}
