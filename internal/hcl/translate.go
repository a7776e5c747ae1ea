// This file contains the logic for translating HCL schema structs into the
// format-agnostic configuration model defined in the config package.

package hcl

import (
	"fmt"

	"github.com/vk/qsirecon/internal/config"
	"github.com/vk/qsirecon/internal/schema"
)

// translateProcessConfig overlays the values present in the file on base.
func translateProcessConfig(f *schema.ProcessConfigFile, base config.Config) *config.Config {
	cfg := base
	if n := f.Nipype; n != nil {
		if n.OMPNThreads != nil {
			cfg.Nipype.OMPNThreads = *n.OMPNThreads
		}
		if n.NProcs != nil {
			cfg.Nipype.NProcs = *n.NProcs
		}
	}
	if e := f.Execution; e != nil && e.OutputDir != nil {
		cfg.Execution.OutputDir = *e.OutputDir
	}
	if lg := f.Log; lg != nil {
		if lg.Level != nil {
			cfg.Log.Level = *lg.Level
		}
		if lg.Format != nil {
			cfg.Log.Format = *lg.Format
		}
	}
	return &cfg
}

// translateArgumentSchema converts a decoded schema file into the agnostic model.
func translateArgumentSchema(f *schema.ArgumentSchemaFile) (*config.ArgumentSchema, error) {
	s := &config.ArgumentSchema{
		Tool:     f.Tool,
		Version:  f.Version,
		Sections: make([]*config.Section, 0, len(f.Sections)),
	}
	seen := make(map[string]struct{}, len(f.Sections))
	for _, sb := range f.Sections {
		if _, dup := seen[sb.Name]; dup {
			return nil, fmt.Errorf("section %q declared more than once", sb.Name)
		}
		seen[sb.Name] = struct{}{}

		sec := &config.Section{Name: sb.Name}
		for _, ab := range sb.Args {
			arg, err := translateArgument(ab)
			if err != nil {
				return nil, fmt.Errorf("section %q: %w", sb.Name, err)
			}
			sec.Args = append(sec.Args, arg)
		}
		s.Sections = append(s.Sections, sec)
	}
	return s, nil
}

// translateArgument converts one argument block, recursing into sub-arguments.
func translateArgument(ab *schema.ArgBlock) (*config.Argument, error) {
	def, err := evalDefault(ab.Default)
	if err != nil {
		return nil, fmt.Errorf("invalid default for argument %q: %w", ab.Name, err)
	}
	arg := &config.Argument{
		Name:        ab.Name,
		Description: ab.Description,
		Type:        ab.Type,
		Default:     def,
	}
	for _, sub := range ab.Subs {
		subArg, err := translateArgument(sub)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", ab.Name, err)
		}
		arg.Subs = append(arg.Subs, subArg)
	}
	return arg, nil
}

// translateInterface converts one interface block into the agnostic model.
func translateInterface(b *schema.InterfaceBlock) *config.InterfaceDefinition {
	def := &config.InterfaceDefinition{
		Name:        b.Name,
		Source:      b.Source,
		Description: b.Description,
		Dynamic:     b.Dynamic,
	}
	for _, in := range b.Inputs {
		def.Inputs = append(def.Inputs, translateField(in))
	}
	for _, out := range b.Outputs {
		def.Outputs = append(def.Outputs, translateField(out))
	}
	return def
}

func translateField(f *schema.FieldBlock) *config.FieldDefinition {
	return &config.FieldDefinition{
		Name:        f.Name,
		Description: f.Description,
		Mandatory:   f.Mandatory,
	}
}
