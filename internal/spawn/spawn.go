// Package spawn is the boundary adapter between built commands and the
// operating system's process facility. It transfers an executable name and
// its tokens onto an exec.Cmd and nothing more: quoting, environment,
// working directories, and output wiring all stay with the caller.
package spawn

import (
	"context"
	"os/exec"

	"github.com/vk/cmdforge/internal/command"
)

// Cmd prepares an exec.Cmd for the given command. The returned Cmd has not
// been started; the caller decides how (and whether) to run it.
func Cmd(ctx context.Context, c *command.Command) *exec.Cmd {
	return exec.CommandContext(ctx, c.Executable, c.Tokens...)
}
