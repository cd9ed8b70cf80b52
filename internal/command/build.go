package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/cmdforge/internal/ctxlog"
	"github.com/vk/cmdforge/internal/plan"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Build materializes the token sequence for one value set against a resolved
// plan. Tokens are emitted in plan order, which is declaration order. Build
// either fully succeeds or returns a ConversionError naming the offending
// argument; it never returns a truncated Command.
//
// Arguments absent from the value map are treated as null: flags read as
// false, optionals and collections emit nothing, and plain values fail.
func Build(ctx context.Context, p *plan.Plan, values map[string]cty.Value) (*Command, error) {
	logger := ctxlog.FromContext(ctx)

	tokens := make([]string, 0, len(p.Args))
	for i := range p.Args {
		spec := &p.Args[i]
		val, ok := values[spec.Name]
		if !ok {
			val = cty.NullVal(cty.DynamicPseudoType)
		}

		emitted, err := emit(spec, val)
		if err != nil {
			return nil, &ConversionError{Command: p.Command, Arg: spec.Name, Err: err}
		}
		tokens = append(tokens, emitted...)
	}

	logger.Debug("Command built.",
		"command", p.Command,
		"executable", p.Executable,
		"tokens", len(tokens),
	)
	return &Command{Executable: p.Executable, Tokens: tokens}, nil
}

// emit produces the token contribution of a single argument.
func emit(spec *plan.ArgSpec, val cty.Value) ([]string, error) {
	switch spec.Kind {
	case plan.KindFlag:
		on, err := flagValue(val)
		if err != nil {
			return nil, err
		}
		if on {
			return []string{spec.Flag}, nil
		}
		return nil, nil

	case plan.KindValue:
		if val.IsNull() {
			return nil, errors.New("no value provided")
		}
		return valueTokens(spec, val)

	case plan.KindOptional:
		if val.IsNull() {
			return nil, nil
		}
		return valueTokens(spec, val)

	case plan.KindRepeated:
		if val.IsNull() {
			return nil, nil
		}
		if !val.IsKnown() {
			return nil, errors.New("value is not known")
		}
		if !val.CanIterateElements() {
			return nil, fmt.Errorf("expected a collection, got %s", val.Type().FriendlyName())
		}
		var tokens []string
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			if elem.IsNull() {
				return nil, errors.New("collection contains a null element")
			}
			elemTokens, err := valueTokens(spec, elem)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, elemTokens...)
		}
		return tokens, nil

	default:
		return nil, fmt.Errorf("unhandled argument kind %d", spec.Kind)
	}
}

// valueTokens converts one value into its token group: the flag string (if
// any) followed by the converted value.
func valueTokens(spec *plan.ArgSpec, val cty.Value) ([]string, error) {
	tok, err := token(val)
	if err != nil {
		return nil, err
	}
	if spec.Flag != "" {
		return []string{spec.Flag, tok}, nil
	}
	return []string{tok}, nil
}

// flagValue reads a boolean presence value. Null reads as false.
func flagValue(val cty.Value) (bool, error) {
	if val.IsNull() {
		return false, nil
	}
	if !val.IsKnown() {
		return false, errors.New("value is not known")
	}
	converted, err := convert.Convert(val, cty.Bool)
	if err != nil {
		return false, fmt.Errorf("cannot read %s as a presence flag: %w", val.Type().FriendlyName(), err)
	}
	return converted.True(), nil
}

// token converts a single non-null value into its string form.
func token(val cty.Value) (string, error) {
	if !val.IsKnown() {
		return "", errors.New("value is not known")
	}
	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("cannot convert %s to a token: %w", val.Type().FriendlyName(), err)
	}
	return converted.AsString(), nil
}
