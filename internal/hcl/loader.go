package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/cmdforge/internal/config"
	"github.com/vk/cmdforge/internal/ctxlog"
	"github.com/vk/cmdforge/internal/fsutil"
	"github.com/vk/cmdforge/internal/schema"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load finds all .hcl manifest files under the given paths, parses them, and
// translates their contents into the format-agnostic model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := newModel()
	parser := hclparse.NewParser()

	for _, path := range paths {
		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find manifest files in %s: %w", path, err)
		}
		if len(files) == 0 {
			logger.Warn("No .hcl manifest files found in path.", "path", path)
			continue
		}
		for _, file := range files {
			hclFile, diags := parser.ParseHCLFile(file)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to parse %s: %w", file, diags)
			}
			if err := l.mergeFile(ctx, file, hclFile.Body, model); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("Manifests loaded.",
		"commands", len(model.Commands),
		"invocations", len(model.Invocations),
	)
	return model, nil
}

// ParseSource parses a single in-memory manifest, mostly useful for tests
// and embedded declarations.
func (l *Loader) ParseSource(ctx context.Context, filename string, src []byte) (*config.Model, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}
	model := newModel()
	if err := l.mergeFile(ctx, filename, hclFile.Body, model); err != nil {
		return nil, err
	}
	return model, nil
}

func newModel() *config.Model {
	return &config.Model{Commands: make(map[string]*config.CommandDefinition)}
}

// mergeFile decodes one manifest body and folds its blocks into the model.
func (l *Loader) mergeFile(ctx context.Context, filename string, body hcl.Body, model *config.Model) error {
	var parsed schema.FileConfig
	diags := gohcl.DecodeBody(body, nil, &parsed)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode %s: %w", filename, diags)
	}

	for _, block := range parsed.Commands {
		def, err := l.translateCommand(ctx, block)
		if err != nil {
			return fmt.Errorf("in %s: %w", filename, err)
		}
		if _, exists := model.Commands[def.Name]; exists {
			return fmt.Errorf("in %s: command %q declared more than once", filename, def.Name)
		}
		model.Commands[def.Name] = def
	}
	for _, block := range parsed.Invocations {
		model.Invocations = append(model.Invocations, l.translateInvocation(block))
	}
	return nil
}
