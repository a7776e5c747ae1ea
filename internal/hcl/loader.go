package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/qsirecon/internal/config"
	"github.com/vk/qsirecon/internal/ctxlog"
	"github.com/vk/qsirecon/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// parse parses src and decodes its body into target.
func (l *Loader) parse(src []byte, filename string, target any) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	if diags := gohcl.DecodeBody(file.Body, nil, target); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	return nil
}

// LoadProcessConfig implements config.Loader.
func (l *Loader) LoadProcessConfig(ctx context.Context, path string, base config.Config) (*config.Config, error) {
	logger := ctxlog.FromContext(ctx)
	if path == "" {
		logger.Debug("No process config file given, using defaults.")
		return &base, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file schema.ProcessConfigFile
	if err := l.parse(src, path, &file); err != nil {
		return nil, err
	}
	cfg := translateProcessConfig(&file, base)
	logger.Debug("Process config loaded.", "path", path, "omp_nthreads", cfg.Nipype.OMPNThreads, "output_dir", cfg.Execution.OutputDir)
	return cfg, nil
}

// LoadArgumentSchema implements config.Loader.
func (l *Loader) LoadArgumentSchema(ctx context.Context, src []byte, filename string) (*config.ArgumentSchema, error) {
	var file schema.ArgumentSchemaFile
	if err := l.parse(src, filename, &file); err != nil {
		return nil, err
	}
	s, err := translateArgumentSchema(&file)
	if err != nil {
		return nil, fmt.Errorf("in %s: %w", filename, err)
	}
	ctxlog.FromContext(ctx).Debug("Argument schema loaded.", "file", filename, "tool", s.Tool, "version", s.Version, "sections", len(s.Sections))
	return s, nil
}

// LoadInterfaces implements config.Loader.
func (l *Loader) LoadInterfaces(ctx context.Context, src []byte, filename string) ([]*config.InterfaceDefinition, error) {
	var file schema.InterfaceManifest
	if err := l.parse(src, filename, &file); err != nil {
		return nil, err
	}
	defs := make([]*config.InterfaceDefinition, 0, len(file.Interfaces))
	for _, b := range file.Interfaces {
		defs = append(defs, translateInterface(b))
	}
	ctxlog.FromContext(ctx).Debug("Interface manifest loaded.", "file", filename, "interfaces", len(defs))
	return defs, nil
}

// evalDefault evaluates an optional default expression. A missing or null
// default yields nil.
func evalDefault(expr hcl.Expression) (*cty.Value, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	return &val, nil
}
