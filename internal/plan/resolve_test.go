package plan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cmdforge/internal/config"
	"github.com/zclconf/go-cty/cty"
)

func definition(name string, executables []string, args ...*config.ArgDefinition) *config.CommandDefinition {
	return &config.CommandDefinition{
		Name:        name,
		Executables: executables,
		Args:        args,
	}
}

func TestResolve_Classification(t *testing.T) {
	ctx := context.Background()

	t.Run("boolean becomes a flag", func(t *testing.T) {
		p, err := Resolve(ctx, definition("test", []string{"test"},
			&config.ArgDefinition{Name: "verbose", Type: cty.Bool, Flag: "-v"},
		))
		require.NoError(t, err)
		require.Len(t, p.Args, 1)
		assert.Equal(t, KindFlag, p.Args[0].Kind)
		assert.Equal(t, "-v", p.Args[0].Flag)
	})

	t.Run("optional becomes an optional value", func(t *testing.T) {
		p, err := Resolve(ctx, definition("test", []string{"test"},
			&config.ArgDefinition{Name: "input", Type: cty.String, Flag: "--input", Optional: true},
		))
		require.NoError(t, err)
		require.Len(t, p.Args, 1)
		assert.Equal(t, KindOptional, p.Args[0].Kind)
		assert.Equal(t, cty.String, p.Args[0].Type)
	})

	t.Run("list becomes a repeated value over its element type", func(t *testing.T) {
		p, err := Resolve(ctx, definition("test", []string{"test"},
			&config.ArgDefinition{Name: "tags", Type: cty.List(cty.String), Flag: "-t"},
		))
		require.NoError(t, err)
		require.Len(t, p.Args, 1)
		assert.Equal(t, KindRepeated, p.Args[0].Kind)
		assert.Equal(t, cty.String, p.Args[0].Type)
	})

	t.Run("set becomes a repeated value", func(t *testing.T) {
		p, err := Resolve(ctx, definition("test", []string{"test"},
			&config.ArgDefinition{Name: "tags", Type: cty.Set(cty.Number)},
		))
		require.NoError(t, err)
		assert.Equal(t, KindRepeated, p.Args[0].Kind)
		assert.Equal(t, cty.Number, p.Args[0].Type)
	})

	t.Run("anything else becomes a plain value", func(t *testing.T) {
		p, err := Resolve(ctx, definition("test", []string{"test"},
			&config.ArgDefinition{Name: "count", Type: cty.Number},
			&config.ArgDefinition{Name: "name", Type: cty.String},
		))
		require.NoError(t, err)
		require.Len(t, p.Args, 2)
		assert.Equal(t, KindValue, p.Args[0].Kind)
		assert.Equal(t, KindValue, p.Args[1].Kind)
	})

	t.Run("missing type defaults to any", func(t *testing.T) {
		p, err := Resolve(ctx, definition("test", []string{"test"},
			&config.ArgDefinition{Name: "anything"},
		))
		require.NoError(t, err)
		assert.Equal(t, KindValue, p.Args[0].Kind)
		assert.Equal(t, cty.DynamicPseudoType, p.Args[0].Type)
	})
}

func TestResolve_OrderPreservation(t *testing.T) {
	ctx := context.Background()

	forward, err := Resolve(ctx, definition("test", []string{"test"},
		&config.ArgDefinition{Name: "a", Type: cty.String},
		&config.ArgDefinition{Name: "b", Type: cty.String},
		&config.ArgDefinition{Name: "c", Type: cty.Bool, Flag: "-c"},
	))
	require.NoError(t, err)

	reversed, err := Resolve(ctx, definition("test", []string{"test"},
		&config.ArgDefinition{Name: "c", Type: cty.Bool, Flag: "-c"},
		&config.ArgDefinition{Name: "b", Type: cty.String},
		&config.ArgDefinition{Name: "a", Type: cty.String},
	))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, argNames(forward))
	assert.Equal(t, []string{"c", "b", "a"}, argNames(reversed))
}

func argNames(p *Plan) []string {
	names := make([]string, len(p.Args))
	for i, spec := range p.Args {
		names[i] = spec.Name
	}
	return names
}

func TestResolve_Executable(t *testing.T) {
	ctx := context.Background()

	t.Run("exactly one executable resolves", func(t *testing.T) {
		p, err := Resolve(ctx, definition("test", []string{"echo"}))
		require.NoError(t, err)
		assert.Equal(t, "echo", p.Executable)
	})

	t.Run("no executable fails", func(t *testing.T) {
		_, err := Resolve(ctx, definition("test", nil))
		var confErr *ConfigurationError
		require.ErrorAs(t, err, &confErr)
		assert.Equal(t, "test", confErr.Command)
		assert.ErrorContains(t, err, "no executable declared")
	})

	t.Run("duplicate executables fail", func(t *testing.T) {
		_, err := Resolve(ctx, definition("test", []string{"a", "b"}))
		var confErr *ConfigurationError
		require.ErrorAs(t, err, &confErr)
		assert.ErrorContains(t, err, "want exactly one")
	})

	t.Run("empty executable fails", func(t *testing.T) {
		_, err := Resolve(ctx, definition("test", []string{""}))
		var confErr *ConfigurationError
		require.ErrorAs(t, err, &confErr)
		assert.ErrorContains(t, err, "must not be empty")
	})
}

func TestResolve_ArgumentDefects(t *testing.T) {
	ctx := context.Background()

	t.Run("boolean without a flag string fails", func(t *testing.T) {
		_, err := Resolve(ctx, definition("test", []string{"test"},
			&config.ArgDefinition{Name: "verbose", Type: cty.Bool},
		))
		var confErr *ConfigurationError
		require.ErrorAs(t, err, &confErr)
		assert.Equal(t, "verbose", confErr.Arg)
		assert.ErrorContains(t, err, "needs a flag string")
	})

	t.Run("optional boolean fails", func(t *testing.T) {
		_, err := Resolve(ctx, definition("test", []string{"test"},
			&config.ArgDefinition{Name: "verbose", Type: cty.Bool, Flag: "-v", Optional: true},
		))
		var confErr *ConfigurationError
		require.ErrorAs(t, err, &confErr)
		assert.ErrorContains(t, err, "already optional")
	})

	t.Run("type with no token form fails", func(t *testing.T) {
		_, err := Resolve(ctx, definition("test", []string{"test"},
			&config.ArgDefinition{Name: "labels", Type: cty.Map(cty.String)},
		))
		var confErr *ConfigurationError
		require.ErrorAs(t, err, &confErr)
		assert.ErrorContains(t, err, "cannot be converted to a token")
	})

	t.Run("collection of collections fails", func(t *testing.T) {
		_, err := Resolve(ctx, definition("test", []string{"test"},
			&config.ArgDefinition{Name: "matrix", Type: cty.List(cty.List(cty.String))},
		))
		var confErr *ConfigurationError
		require.ErrorAs(t, err, &confErr)
	})

	t.Run("duplicate argument names fail", func(t *testing.T) {
		_, err := Resolve(ctx, definition("test", []string{"test"},
			&config.ArgDefinition{Name: "input", Type: cty.String},
			&config.ArgDefinition{Name: "input", Type: cty.String},
		))
		var confErr *ConfigurationError
		require.ErrorAs(t, err, &confErr)
		assert.ErrorContains(t, err, "declared more than once")
	})
}

func TestPlan_Arg(t *testing.T) {
	ctx := context.Background()

	p, err := Resolve(ctx, definition("test", []string{"test"},
		&config.ArgDefinition{Name: "input", Type: cty.String},
	))
	require.NoError(t, err)

	spec, ok := p.Arg("input")
	require.True(t, ok)
	assert.Equal(t, "input", spec.Name)

	_, ok = p.Arg("missing")
	assert.False(t, ok)
}
