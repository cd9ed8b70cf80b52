package command

import "strings"

// Command is the builder's sole output artifact: an executable name plus the
// ordered argv tokens to hand to a process spawner. Each Command is an
// independent value with no aliasing back to the plan it was built from.
type Command struct {
	Executable string
	Tokens     []string
}

// String renders the command line for logs and dry-run output. It performs
// no shell quoting; the token boundaries are the real contract.
func (c *Command) String() string {
	if len(c.Tokens) == 0 {
		return c.Executable
	}
	return c.Executable + " " + strings.Join(c.Tokens, " ")
}
