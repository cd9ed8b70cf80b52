package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cmdforge/internal/app"
	"github.com/vk/cmdforge/internal/command"
	"github.com/vk/cmdforge/internal/hcl"
	"github.com/vk/cmdforge/internal/plan"
)

// writeManifest drops a manifest into a fresh temp dir and returns the dir.
func writeManifest(t *testing.T, source string) string {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "main.hcl"), []byte(source), 0600)
	require.NoError(t, err)
	return dir
}

func newTestApp(t *testing.T, out *bytes.Buffer, cfg app.Config) *app.App {
	t.Helper()
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	validated, err := app.NewConfig(cfg)
	require.NoError(t, err)
	return app.NewApp(out, validated, hcl.NewLoader())
}

func TestRun_PrintsBuiltInvocations(t *testing.T) {
	dir := writeManifest(t, `
command "echo" {
  executable = "echo"

  arg "no_newline" {
    type = bool
    flag = "-n"
  }

  arg "text" {
    type = string
  }
}

invocation "echo" "greeting" {
  arguments {
    no_newline = true
    text       = "hello world"
  }
}

invocation "echo" "farewell" {
  arguments {
    text = "bye"
  }
}
`)

	out := &bytes.Buffer{}
	a := newTestApp(t, out, app.Config{ManifestPath: dir})

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "greeting: echo -n hello world")
	assert.Contains(t, out.String(), "farewell: echo bye")
}

func TestRun_InvocationFilter(t *testing.T) {
	dir := writeManifest(t, `
command "echo" {
  executable = "echo"

  arg "text" { type = string }
}

invocation "echo" "first" {
  arguments { text = "one" }
}

invocation "echo" "second" {
  arguments { text = "two" }
}
`)

	t.Run("builds only the named invocation", func(t *testing.T) {
		out := &bytes.Buffer{}
		a := newTestApp(t, out, app.Config{ManifestPath: dir, Invocation: "second"})

		require.NoError(t, a.Run(context.Background()))
		assert.NotContains(t, out.String(), "first")
		assert.Contains(t, out.String(), "second: echo two")
	})

	t.Run("unknown name is an error", func(t *testing.T) {
		out := &bytes.Buffer{}
		a := newTestApp(t, out, app.Config{ManifestPath: dir, Invocation: "third"})

		err := a.Run(context.Background())
		assert.ErrorContains(t, err, `no invocation named "third"`)
	})
}

func TestRun_DeclarationDefectsSurfaceBeforeBuilding(t *testing.T) {
	dir := writeManifest(t, `
command "broken" {
  arg "verbose" {
    type = bool
    flag = "-v"
  }
}

invocation "broken" "never_built" {
  arguments { verbose = true }
}
`)

	out := &bytes.Buffer{}
	a := newTestApp(t, out, app.Config{ManifestPath: dir})

	err := a.Run(context.Background())
	var confErr *plan.ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.ErrorContains(t, err, "no executable declared")
	assert.Empty(t, out.String())
}

func TestRun_InvocationDefects(t *testing.T) {
	t.Run("unknown command reference", func(t *testing.T) {
		dir := writeManifest(t, `
invocation "ghost" "x" {
  arguments {}
}
`)
		out := &bytes.Buffer{}
		a := newTestApp(t, out, app.Config{ManifestPath: dir})

		err := a.Run(context.Background())
		assert.ErrorContains(t, err, `references unknown command "ghost"`)
	})

	t.Run("undeclared argument name", func(t *testing.T) {
		dir := writeManifest(t, `
command "echo" {
  executable = "echo"

  arg "text" { type = string }
}

invocation "echo" "x" {
  arguments {
    text  = "hi"
    extra = "nope"
  }
}
`)
		out := &bytes.Buffer{}
		a := newTestApp(t, out, app.Config{ManifestPath: dir})

		err := a.Run(context.Background())
		assert.ErrorContains(t, err, `sets "extra"`)
	})

	t.Run("missing required value", func(t *testing.T) {
		dir := writeManifest(t, `
command "echo" {
  executable = "echo"

  arg "text" { type = string }
}

invocation "echo" "x" {
  arguments {}
}
`)
		out := &bytes.Buffer{}
		a := newTestApp(t, out, app.Config{ManifestPath: dir})

		err := a.Run(context.Background())
		var convErr *command.ConversionError
		require.ErrorAs(t, err, &convErr)
		assert.Equal(t, "text", convErr.Arg)
	})
}

func TestRun_NoInvocations(t *testing.T) {
	dir := writeManifest(t, `
command "echo" {
  executable = "echo"

  arg "text" { type = string }
}
`)

	out := &bytes.Buffer{}
	a := newTestApp(t, out, app.Config{ManifestPath: dir})

	require.NoError(t, a.Run(context.Background()))
}

func TestNewConfig_RequiresManifestPath(t *testing.T) {
	_, err := app.NewConfig(app.Config{})
	assert.ErrorContains(t, err, "ManifestPath")
}
