package klass

import "fmt"

// ReservedNameError reports a definition or member assignment using a name
// the compiler reserves for itself. Raised before any class state mutates.
type ReservedNameError struct {
	Name string
}

func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("reserved member name %q", e.Name)
}

// NoSuperclassMethodError reports a super call with no base implementation
// to dispatch to. Raised at call time inside the invoking method.
type NoSuperclassMethodError struct {
	Method string
}

func (e *NoSuperclassMethodError) Error() string {
	return fmt.Sprintf("no superclass method %q to call", e.Method)
}
