package skink

import "fmt"

// A UsageError reports a misuse of the runtime: an operation applied to a
// value of the wrong shape, a lookup of an unknown class or method, or a
// request to serialize a value that has no representation in the requested
// format.
type UsageError struct {
	err error
}

// Usagef creates a UsageError with a formatted message. The format verb %w
// wraps an underlying error as with fmt.Errorf.
func Usagef(format string, args ...interface{}) error {
	return &UsageError{err: fmt.Errorf(format, args...)}
}

// Error returns the error message.
func (e *UsageError) Error() string {
	return e.err.Error()
}

// Unwrap returns the wrapped error, if any.
func (e *UsageError) Unwrap() error {
	return e.err
}

// An UnsafeError reports a refused mutation: the operation is well-formed but
// cannot be performed without losing a guarantee, such as untainting a value
// whose taint lives behind an overload hook.
type UnsafeError struct {
	err error
}

// Unsafef creates an UnsafeError with a formatted message.
func Unsafef(format string, args ...interface{}) error {
	return &UnsafeError{err: fmt.Errorf(format, args...)}
}

// Error returns the error message.
func (e *UnsafeError) Error() string {
	return e.err.Error()
}

// Unwrap returns the wrapped error, if any.
func (e *UnsafeError) Unwrap() error {
	return e.err
}

// A CycleError reports an attempt to serialize a self-referential structure
// in a format that cannot express references.
type CycleError struct {
	// ID is the unique ID of the first object reached twice.
	ID uintptr
}

// Error returns the error message.
func (e *CycleError) Error() string {
	return fmt.Sprintf("cannot represent cyclic structure (object %d revisited)", e.ID)
}
