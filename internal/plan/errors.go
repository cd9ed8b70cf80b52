package plan

import "fmt"

// ConfigurationError reports a defect in a command declaration: a missing or
// duplicated command-level annotation, or an argument annotation that is
// incompatible with its declared type. It surfaces when the shape is
// resolved, before any command is ever built.
type ConfigurationError struct {
	Command string
	Arg     string // empty for command-level defects
	Reason  string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Arg == "" {
		return fmt.Sprintf("command %q: %s", e.Command, e.Reason)
	}
	return fmt.Sprintf("command %q, arg %q: %s", e.Command, e.Arg, e.Reason)
}
