package plan

import (
	"context"
	"fmt"

	"github.com/vk/cmdforge/internal/config"
	"github.com/vk/cmdforge/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Resolve validates a raw command definition and produces its immutable Plan.
// Resolution runs once per shape; the returned plan is reused for every
// instance of that shape.
func Resolve(ctx context.Context, def *config.CommandDefinition) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving command definition.", "command", def.Name)

	executable, err := resolveExecutable(def)
	if err != nil {
		return nil, err
	}

	args := make([]ArgSpec, 0, len(def.Args))
	seen := make(map[string]struct{}, len(def.Args))
	for _, arg := range def.Args {
		if _, dup := seen[arg.Name]; dup {
			return nil, &ConfigurationError{
				Command: def.Name,
				Arg:     arg.Name,
				Reason:  "declared more than once",
			}
		}
		seen[arg.Name] = struct{}{}

		spec, err := classify(def.Name, arg)
		if err != nil {
			return nil, err
		}
		logger.Debug("Classified argument.",
			"command", def.Name,
			"arg", arg.Name,
			"kind", spec.Kind.String(),
		)
		args = append(args, spec)
	}

	logger.Debug("Command plan resolved.",
		"command", def.Name,
		"executable", executable,
		"args", len(args),
	)
	return &Plan{
		Command:    def.Name,
		Executable: executable,
		Args:       args,
	}, nil
}

// resolveExecutable enforces the exactly-one-executable rule.
func resolveExecutable(def *config.CommandDefinition) (string, error) {
	switch len(def.Executables) {
	case 0:
		return "", &ConfigurationError{
			Command: def.Name,
			Reason:  "no executable declared",
		}
	case 1:
		if def.Executables[0] == "" {
			return "", &ConfigurationError{
				Command: def.Name,
				Reason:  "executable must not be empty",
			}
		}
		return def.Executables[0], nil
	default:
		return "", &ConfigurationError{
			Command: def.Name,
			Reason:  fmt.Sprintf("%d executable annotations declared, want exactly one", len(def.Executables)),
		}
	}
}

// classify maps one raw argument annotation onto its ArgSpec. The declared
// type drives the decision, in priority order: bool, optional-of-T,
// collection-of-T, plain value.
func classify(command string, arg *config.ArgDefinition) (ArgSpec, error) {
	declared := arg.Type
	if declared == cty.NilType {
		declared = cty.DynamicPseudoType
	}

	switch {
	case declared.Equals(cty.Bool):
		if arg.Flag == "" {
			return ArgSpec{}, &ConfigurationError{
				Command: command,
				Arg:     arg.Name,
				Reason:  "a boolean argument is a presence flag and needs a flag string",
			}
		}
		if arg.Optional {
			return ArgSpec{}, &ConfigurationError{
				Command: command,
				Arg:     arg.Name,
				Reason:  "a presence flag is already optional",
			}
		}
		return ArgSpec{Name: arg.Name, Kind: KindFlag, Flag: arg.Flag, Type: cty.Bool}, nil

	case arg.Optional:
		if !stringable(declared) {
			return ArgSpec{}, unconvertible(command, arg.Name, declared)
		}
		return ArgSpec{Name: arg.Name, Kind: KindOptional, Flag: arg.Flag, Type: declared}, nil

	case declared.IsListType() || declared.IsSetType():
		elem := declared.ElementType()
		if !stringable(elem) {
			return ArgSpec{}, unconvertible(command, arg.Name, elem)
		}
		return ArgSpec{Name: arg.Name, Kind: KindRepeated, Flag: arg.Flag, Type: elem}, nil

	case declared.IsTupleType():
		// Tuples carry per-index types, so element conversion is checked when
		// the command is built.
		return ArgSpec{Name: arg.Name, Kind: KindRepeated, Flag: arg.Flag, Type: cty.DynamicPseudoType}, nil

	default:
		if !stringable(declared) {
			return ArgSpec{}, unconvertible(command, arg.Name, declared)
		}
		return ArgSpec{Name: arg.Name, Kind: KindValue, Flag: arg.Flag, Type: declared}, nil
	}
}

// stringable reports whether values of the given type can become a token.
func stringable(t cty.Type) bool {
	if t == cty.DynamicPseudoType || t.Equals(cty.String) {
		return true
	}
	return convert.GetConversionUnsafe(t, cty.String) != nil
}

func unconvertible(command, arg string, t cty.Type) error {
	return &ConfigurationError{
		Command: command,
		Arg:     arg,
		Reason:  fmt.Sprintf("values of type %s cannot be converted to a token", t.FriendlyName()),
	}
}
