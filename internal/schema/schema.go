// Package schema holds the HCL decoding targets for every file format the
// application reads. The structs mirror the on-disk layout one to one; the
// hcl package translates them into the format-agnostic config model.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// --- Tool argument schema ---

// ArgumentSchemaFile is the top-level structure of a tool argument schema,
// e.g. the embedded pyAFQ schema.
type ArgumentSchemaFile struct {
	Tool     string          `hcl:"tool,optional"`
	Version  string          `hcl:"version"`
	Sections []*SectionBlock `hcl:"section,block"`
	Body     hcl.Body        `hcl:",remain"`
}

// SectionBlock groups the arguments of one `section "NAME"` block.
type SectionBlock struct {
	Name string      `hcl:"name,label"`
	Args []*ArgBlock `hcl:"arg,block"`
}

// ArgBlock describes one accepted argument. Special arguments list the
// arguments they group as nested `sub` blocks.
type ArgBlock struct {
	Name        string         `hcl:"name,label"`
	Description string         `hcl:"description,optional"`
	Type        string         `hcl:"type,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
	Subs        []*ArgBlock    `hcl:"sub,block"`
}

// --- Interface manifests ---

// InterfaceManifest is the top-level structure of an interface manifest file.
type InterfaceManifest struct {
	Interfaces []*InterfaceBlock `hcl:"interface,block"`
	Body       hcl.Body          `hcl:",remain"`
}

// InterfaceBlock declares the named input and output fields of a single
// workflow-engine interface.
type InterfaceBlock struct {
	Name        string        `hcl:"name,label"`
	Source      string        `hcl:"source"`
	Description string        `hcl:"description,optional"`
	Dynamic     bool          `hcl:"dynamic,optional"`
	Inputs      []*FieldBlock `hcl:"input,block"`
	Outputs     []*FieldBlock `hcl:"output,block"`
}

// FieldBlock declares a single input or output field.
type FieldBlock struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`
	Mandatory   bool   `hcl:"mandatory,optional"`
}

// --- Process configuration ---

// ProcessConfigFile is the top-level structure of the process-wide
// configuration file.
type ProcessConfigFile struct {
	Nipype    *NipypeBlock    `hcl:"nipype,block"`
	Execution *ExecutionBlock `hcl:"execution,block"`
	Log       *LogBlock       `hcl:"log,block"`
	Body      hcl.Body        `hcl:",remain"`
}

// NipypeBlock holds workflow-engine resource settings.
type NipypeBlock struct {
	OMPNThreads *int `hcl:"omp_nthreads,optional"`
	NProcs      *int `hcl:"n_procs,optional"`
}

// ExecutionBlock holds run-level settings.
type ExecutionBlock struct {
	OutputDir *string `hcl:"output_dir,optional"`
}

// LogBlock holds logging settings.
type LogBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}
