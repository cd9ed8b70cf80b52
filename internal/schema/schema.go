package schema

import "github.com/hashicorp/hcl/v2"

// --- Command Declaration Schemas ---

// ArgBlock represents one `arg` block inside a command declaration: a single
// field of the command's shape.
type ArgBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Flag        string         `hcl:"flag,optional"`
	Optional    bool           `hcl:"optional,optional"`
	Description string         `hcl:"description,optional"`
}

// CommandBlock represents a `command` block: one declared command shape.
// The executable attribute is optional at the syntax level so that its
// absence surfaces as a resolution error rather than a parse error.
type CommandBlock struct {
	Name        string      `hcl:"name,label"`
	Executable  string      `hcl:"executable,optional"`
	Description string      `hcl:"description,optional"`
	Args        []*ArgBlock `hcl:"arg,block"`
}

// --- Invocation Schemas ---

// InvocationArgs represents the content of the `arguments` block within an
// invocation.
type InvocationArgs struct {
	Body hcl.Body `hcl:",remain"`
}

// Invocation represents an `invocation` block from a manifest file: one
// concrete value set for a declared command.
type Invocation struct {
	CommandType string          `hcl:"command_type,label"`
	Name        string          `hcl:"instance_name,label"`
	Arguments   *InvocationArgs `hcl:"arguments,block"`
}

// FileConfig represents the top-level structure of a manifest file,
// containing all declared commands and invocations.
type FileConfig struct {
	Commands    []*CommandBlock `hcl:"command,block"`
	Invocations []*Invocation   `hcl:"invocation,block"`
	Body        hcl.Body        `hcl:",remain"`
}
