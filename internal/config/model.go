package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of everything loaded
// from declaration sources: the declared command shapes and the invocations
// that reference them.
type Model struct {
	Commands    map[string]*CommandDefinition
	Invocations []*Invocation
}

// CommandDefinition is the raw, unresolved declaration of one command shape.
// It carries annotations exactly as a front-end found them; all validation
// belongs to the plan resolver.
type CommandDefinition struct {
	Name        string
	Description string

	// Executables lists every executable annotation found on the declaration.
	// A definition is only valid with exactly one entry, but the raw model
	// keeps all of them so the resolver can report duplicates.
	Executables []string

	// Args preserves declaration order. Order is semantically significant:
	// it fixes the order of the final token sequence.
	Args []*ArgDefinition
}

// ArgDefinition is one field's raw argument annotation.
type ArgDefinition struct {
	Name        string
	Type        cty.Type
	Flag        string // flag string to emit before the value; empty means positional
	Optional    bool
	Description string
}

// Invocation is the format-agnostic representation of an `invocation` block:
// one concrete value set for a declared command.
type Invocation struct {
	CommandType string
	Name        string
	Arguments   map[string]hcl.Expression
}
