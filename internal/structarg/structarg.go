package structarg

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/vk/cmdforge/internal/command"
	"github.com/vk/cmdforge/internal/config"
	"github.com/vk/cmdforge/internal/ctxlog"
	"github.com/vk/cmdforge/internal/plan"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Tag directives understood on a struct field's `cmd` tag:
//
//	cmd:"executable=NAME"  declares the command's executable (marker field)
//	cmd:"arg"              positional value
//	cmd:"option=NAME"      value prefixed with NAME
//	cmd:"flag=NAME"        boolean presence flag NAME
//
// Fields without a cmd tag are plain data and contribute no tokens.
const tagKey = "cmd"

// binding connects one struct field to its argument in the plan.
type binding struct {
	field    int
	name     string
	typ      cty.Type
	optional bool
}

// Compiled is a command shape derived from a struct type. The plan inside is
// resolved once at Compile time and shared, read-only, by every Command call.
type Compiled struct {
	typ      reflect.Type
	plan     *plan.Plan
	bindings []binding
}

// Compile derives a command definition from the prototype's struct type and
// resolves it. The prototype's field values are ignored; only its type and
// tags matter. Field order in the struct fixes token order.
func Compile(ctx context.Context, prototype any) (*Compiled, error) {
	logger := ctxlog.FromContext(ctx)

	t := reflect.TypeOf(prototype)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("prototype must be a struct or pointer to struct, got %T", prototype)
	}
	logger.Debug("Compiling command struct.", "type", t.Name())

	def := &config.CommandDefinition{Name: t.Name()}
	var bindings []binding

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, ok := field.Tag.Lookup(tagKey)
		if !ok || tag == "" || tag == "-" {
			continue
		}

		if exe, isExe := strings.CutPrefix(tag, "executable="); isExe {
			def.Executables = append(def.Executables, exe)
			continue
		}

		flag, err := parseArgTag(t.Name(), field.Name, tag)
		if err != nil {
			return nil, err
		}
		if !field.IsExported() {
			return nil, &plan.ConfigurationError{
				Command: t.Name(),
				Arg:     field.Name,
				Reason:  "argument fields must be exported",
			}
		}

		goType := field.Type
		optional := false
		if goType.Kind() == reflect.Pointer {
			optional = true
			goType = goType.Elem()
		}

		declared, err := impliedType(goType)
		if err != nil {
			return nil, &plan.ConfigurationError{
				Command: t.Name(),
				Arg:     field.Name,
				Reason:  err.Error(),
			}
		}

		def.Args = append(def.Args, &config.ArgDefinition{
			Name:     field.Name,
			Type:     declared,
			Flag:     flag,
			Optional: optional,
		})
		bindings = append(bindings, binding{
			field:    i,
			name:     field.Name,
			typ:      declared,
			optional: optional,
		})
	}

	p, err := plan.Resolve(ctx, def)
	if err != nil {
		return nil, err
	}
	return &Compiled{typ: t, plan: p, bindings: bindings}, nil
}

// parseArgTag interprets one field's argument directive and returns the flag
// string to emit before the value, or empty for positional arguments.
func parseArgTag(commandName, fieldName, tag string) (string, error) {
	switch {
	case tag == "arg":
		return "", nil
	case strings.HasPrefix(tag, "option="):
		return strings.TrimPrefix(tag, "option="), nil
	case strings.HasPrefix(tag, "flag="):
		return strings.TrimPrefix(tag, "flag="), nil
	default:
		return "", &plan.ConfigurationError{
			Command: commandName,
			Arg:     fieldName,
			Reason:  fmt.Sprintf("unrecognized cmd tag %q", tag),
		}
	}
}

// impliedType maps a Go field type onto its declared cty type.
func impliedType(goType reflect.Type) (cty.Type, error) {
	implied, err := gocty.ImpliedType(reflect.Zero(goType).Interface())
	if err != nil {
		return cty.NilType, fmt.Errorf("cannot imply a value type from Go type %s: %v", goType, err)
	}
	return implied, nil
}

// Plan exposes the compiled shape's resolved plan.
func (c *Compiled) Plan() *plan.Plan {
	return c.plan
}

// Command builds the token sequence for one instance of the compiled struct
// type. The instance may be passed by value or by pointer.
func (c *Compiled) Command(ctx context.Context, instance any) (*command.Command, error) {
	v := reflect.ValueOf(instance)
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		v = v.Elem()
	}
	if !v.IsValid() || v.Type() != c.typ {
		return nil, fmt.Errorf("instance must be of type %s, got %T", c.typ, instance)
	}

	values := make(map[string]cty.Value, len(c.bindings))
	for _, b := range c.bindings {
		fieldVal := v.Field(b.field)

		if b.optional {
			if fieldVal.IsNil() {
				values[b.name] = cty.NullVal(b.typ)
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		if fieldVal.Kind() == reflect.Slice && fieldVal.IsNil() {
			values[b.name] = cty.NullVal(b.typ)
			continue
		}

		val, err := gocty.ToCtyValue(fieldVal.Interface(), b.typ)
		if err != nil {
			return nil, &command.ConversionError{Command: c.plan.Command, Arg: b.name, Err: err}
		}
		values[b.name] = val
	}

	return command.Build(ctx, c.plan, values)
}
