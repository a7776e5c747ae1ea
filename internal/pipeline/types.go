package pipeline

import (
	"slices"

	"github.com/vk/qsirecon/internal/config"
	"github.com/vk/qsirecon/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// Node is a single unit of work in a workflow.
type Node struct {
	Address   *nodeid.Address
	Interface *config.InterfaceDefinition
	// Fields lists the input and output fields of a node built from a
	// dynamic interface. It is empty otherwise.
	Fields []string
	// Inputs holds the statically assigned input values.
	Inputs map[string]cty.Value
	// NProcs is the number of processors the node requests; zero leaves the
	// engine default.
	NProcs               int
	RunWithoutSubmitting bool
}

// Name returns the node's name within its workflow.
func (n *Node) Name() string {
	return n.Address.Last()
}

// HasInput reports whether field can receive a value.
func (n *Node) HasInput(field string) bool {
	if n.Interface.Dynamic {
		return slices.Contains(n.Fields, field)
	}
	return n.Interface.HasInput(field)
}

// HasOutput reports whether field can be connected from.
func (n *Node) HasOutput(field string) bool {
	if n.Interface.Dynamic {
		return slices.Contains(n.Fields, field)
	}
	return n.Interface.HasOutput(field)
}

// Connection feeds one node output into one node input.
type Connection struct {
	Source      string
	SourceField string
	Dest        string
	DestField   string
}

// FieldPair names a source output and the destination input it feeds.
type FieldPair struct {
	From string
	To   string
}

// Same connects fields that share a name on both nodes.
func Same(fields ...string) []FieldPair {
	pairs := make([]FieldPair, len(fields))
	for i, f := range fields {
		pairs[i] = FieldPair{From: f, To: f}
	}
	return pairs
}

// Option configures a node when it is added.
type Option func(*nodeOptions)

type nodeOptions struct {
	fields               []string
	inputs               map[string]cty.Value
	nProcs               int
	runWithoutSubmitting bool
}

// WithFields sets the field list of a node built from a dynamic interface.
func WithFields(fields ...string) Option {
	return func(o *nodeOptions) {
		o.fields = append(o.fields, fields...)
	}
}

// WithInputs assigns static input values.
func WithInputs(inputs map[string]cty.Value) Option {
	return func(o *nodeOptions) {
		if o.inputs == nil {
			o.inputs = make(map[string]cty.Value, len(inputs))
		}
		for k, v := range inputs {
			o.inputs[k] = v
		}
	}
}

// WithInput assigns a single static input value.
func WithInput(field string, v cty.Value) Option {
	return WithInputs(map[string]cty.Value{field: v})
}

// WithNProcs sets the number of processors the node requests.
func WithNProcs(n int) Option {
	return func(o *nodeOptions) {
		o.nProcs = n
	}
}

// RunWithoutSubmitting runs the node in the engine's main process instead
// of submitting it to the execution plugin.
func RunWithoutSubmitting() Option {
	return func(o *nodeOptions) {
		o.runWithoutSubmitting = true
	}
}
