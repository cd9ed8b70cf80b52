package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/cmdforge/internal/command"
	"github.com/vk/cmdforge/internal/config"
	"github.com/vk/cmdforge/internal/ctxlog"
	"github.com/vk/cmdforge/internal/plan"
	"github.com/vk/cmdforge/internal/spawn"
	"github.com/zclconf/go-cty/cty"
)

// Run executes the main application logic: load manifests, resolve every
// declared command shape, then build (and optionally spawn) each invocation.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, err := a.loader.Load(ctx, a.config.ManifestPath)
	if err != nil {
		return fmt.Errorf("failed to load manifests: %w", err)
	}

	// Resolve all plans up front so declaration defects surface before any
	// invocation is built.
	plans, err := resolvePlans(ctx, model)
	if err != nil {
		return err
	}
	a.logger.Info("Command plans resolved.", "count", len(plans))

	if len(model.Invocations) == 0 {
		a.logger.Warn("No invocations found in manifests, nothing to build.", "path", a.config.ManifestPath)
		return nil
	}

	built := 0
	for _, inv := range model.Invocations {
		if a.config.Invocation != "" && inv.Name != a.config.Invocation {
			continue
		}
		cmd, err := buildInvocation(ctx, plans, inv)
		if err != nil {
			return err
		}
		built++

		if !a.config.Spawn {
			fmt.Fprintf(a.outW, "%s: %s\n", inv.Name, cmd.String())
			continue
		}
		if err := a.spawnCommand(ctx, inv.Name, cmd); err != nil {
			return err
		}
	}

	if built == 0 && a.config.Invocation != "" {
		return fmt.Errorf("no invocation named %q found in manifests", a.config.Invocation)
	}

	a.logger.Debug("App.Run method finished.", "built", built)
	return nil
}

// resolvePlans resolves every declared command shape, in name order so that
// the first reported defect is deterministic.
func resolvePlans(ctx context.Context, model *config.Model) (map[string]*plan.Plan, error) {
	names := make([]string, 0, len(model.Commands))
	for name := range model.Commands {
		names = append(names, name)
	}
	sort.Strings(names)

	plans := make(map[string]*plan.Plan, len(names))
	for _, name := range names {
		p, err := plan.Resolve(ctx, model.Commands[name])
		if err != nil {
			return nil, err
		}
		plans[name] = p
	}
	return plans, nil
}

// buildInvocation evaluates an invocation's argument expressions and builds
// its command against the resolved plan.
func buildInvocation(ctx context.Context, plans map[string]*plan.Plan, inv *config.Invocation) (*command.Command, error) {
	p, ok := plans[inv.CommandType]
	if !ok {
		return nil, fmt.Errorf("invocation %q references unknown command %q", inv.Name, inv.CommandType)
	}

	values := make(map[string]cty.Value, len(inv.Arguments))
	for name, expr := range inv.Arguments {
		if _, declared := p.Arg(name); !declared {
			return nil, fmt.Errorf("invocation %q sets %q, which command %q does not declare", inv.Name, name, inv.CommandType)
		}
		val, diags := expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invocation %q, argument %q: %w", inv.Name, name, diags)
		}
		values[name] = val
	}

	cmd, err := command.Build(ctx, p, values)
	if err != nil {
		return nil, fmt.Errorf("invocation %q: %w", inv.Name, err)
	}
	return cmd, nil
}

// spawnCommand hands a built command to the process facility and streams its
// output to the application writer.
func (a *App) spawnCommand(ctx context.Context, name string, cmd *command.Command) error {
	a.logger.Info("Spawning command.", "invocation", name, "executable", cmd.Executable)

	proc := spawn.Cmd(ctx, cmd)
	proc.Stdout = a.outW
	proc.Stderr = a.outW
	if err := proc.Run(); err != nil {
		return fmt.Errorf("invocation %q failed: %w", name, err)
	}
	return nil
}
