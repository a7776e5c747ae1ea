package config

import (
	"github.com/zclconf/go-cty/cty"
)

// --- Tool argument schema ---

// ArgumentSchema is the format-agnostic description of the arguments an
// external tool accepts, grouped into ordered sections.
type ArgumentSchema struct {
	Tool     string
	Version  string
	Sections []*Section
}

// Section is a named, ordered group of arguments.
type Section struct {
	Name string
	Args []*Argument
}

// Argument describes one accepted argument. Subs is non-empty only for
// arguments that group other arguments.
type Argument struct {
	Name        string
	Description string
	Type        string
	Default     *cty.Value
	Subs        []*Argument
}

// Section returns the section with the given name.
func (s *ArgumentSchema) Section(name string) (*Section, bool) {
	if s == nil {
		return nil, false
	}
	for _, sec := range s.Sections {
		if sec.Name == name {
			return sec, true
		}
	}
	return nil, false
}

// Argument returns the argument with the given name.
func (s *Section) Argument(name string) (*Argument, bool) {
	for _, a := range s.Args {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// --- Interface definitions ---

// InterfaceDefinition is the format-agnostic description of a workflow-engine
// interface: the named fields a node built from it consumes and produces.
type InterfaceDefinition struct {
	Name        string
	Source      string
	Description string
	// Dynamic interfaces take their field list from the node that uses them.
	Dynamic bool
	Inputs  []*FieldDefinition
	Outputs []*FieldDefinition
}

// FieldDefinition describes a single input or output field.
type FieldDefinition struct {
	Name        string
	Description string
	Mandatory   bool
}

// HasInput reports whether the interface declares an input called name.
func (d *InterfaceDefinition) HasInput(name string) bool {
	return hasField(d.Inputs, name)
}

// HasOutput reports whether the interface declares an output called name.
func (d *InterfaceDefinition) HasOutput(name string) bool {
	return hasField(d.Outputs, name)
}

func hasField(fields []*FieldDefinition, name string) bool {
	for _, f := range fields {
		if f.Name == name {
			return true
		}
	}
	return false
}
