// This file contains the logic for translating HCL schema structs into the
// format-agnostic declaration model defined in the config package.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/cmdforge/internal/config"
	"github.com/vk/cmdforge/internal/schema"
)

// translateCommand converts the HCL-specific command schema into the
// agnostic model. Block order is preserved: it fixes token order.
func (l *Loader) translateCommand(ctx context.Context, b *schema.CommandBlock) (*config.CommandDefinition, error) {
	def := &config.CommandDefinition{
		Name:        b.Name,
		Description: b.Description,
	}
	if b.Executable != "" {
		def.Executables = append(def.Executables, b.Executable)
	}

	for _, arg := range b.Args {
		declared, err := typeExprToCtyType(ctx, arg.Type)
		if err != nil {
			return nil, fmt.Errorf("command %q, arg %q: %w", b.Name, arg.Name, err)
		}
		def.Args = append(def.Args, &config.ArgDefinition{
			Name:        arg.Name,
			Type:        declared,
			Flag:        arg.Flag,
			Optional:    arg.Optional,
			Description: arg.Description,
		})
	}
	return def, nil
}

// translateInvocation converts the HCL-specific invocation schema into the
// agnostic model.
func (l *Loader) translateInvocation(s *schema.Invocation) *config.Invocation {
	return &config.Invocation{
		CommandType: s.CommandType,
		Name:        s.Name,
		Arguments:   extractBodyAttributes(s.Arguments),
	}
}

// extractBodyAttributes pulls the raw attribute expressions out of an
// `arguments` block body.
func extractBodyAttributes(args *schema.InvocationArgs) map[string]hcl.Expression {
	if args == nil {
		return nil
	}
	attrs, _ := args.Body.JustAttributes()
	if len(attrs) == 0 {
		return nil
	}
	exprMap := make(map[string]hcl.Expression, len(attrs))
	for name, attr := range attrs {
		exprMap[name] = attr.Expr
	}
	return exprMap
}
