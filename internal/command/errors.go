package command

import "fmt"

// ConversionError reports that one field's runtime value could not become a
// token. It names the offending argument and surfaces per-instance; the plan
// itself stays valid for other instances.
type ConversionError struct {
	Command string
	Arg     string
	Err     error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("command %q, arg %q: %v", e.Command, e.Arg, e.Err)
}

// Unwrap exposes the underlying conversion failure.
func (e *ConversionError) Unwrap() error {
	return e.Err
}
