package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/vk/qsirecon/internal/ctxlog"
	"github.com/vk/qsirecon/internal/dag"
	"github.com/vk/qsirecon/internal/nodeid"
	"github.com/vk/qsirecon/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Workflow is a named graph of nodes and connections.
type Workflow struct {
	address     *nodeid.Address
	registry    *registry.Registry
	description string
	nodes       []*Node
	byName      map[string]*Node
	connections []*Connection
}

// New creates an empty workflow whose nodes are built from interfaces in reg.
func New(name string, reg *registry.Registry) (*Workflow, error) {
	if !nodeid.ValidName(name) {
		return nil, fmt.Errorf("invalid workflow name %q", name)
	}
	if reg == nil {
		return nil, errors.New("workflow requires an interface registry")
	}
	return &Workflow{
		address:  nodeid.New(name),
		registry: reg,
		byName:   make(map[string]*Node),
	}, nil
}

// Name returns the workflow name.
func (w *Workflow) Name() string {
	return w.address.Last()
}

// Address returns the workflow's own address.
func (w *Workflow) Address() *nodeid.Address {
	return w.address
}

// Desc returns the human-readable description of the workflow.
func (w *Workflow) Desc() string {
	return w.description
}

// SetDesc sets the human-readable description of the workflow.
func (w *Workflow) SetDesc(desc string) {
	w.description = desc
}

// AddNode creates a node named name from the registered interface iface.
func (w *Workflow) AddNode(ctx context.Context, name, iface string, opts ...Option) (*Node, error) {
	if !nodeid.ValidName(name) {
		return nil, fmt.Errorf("invalid node name %q", name)
	}
	if _, exists := w.byName[name]; exists {
		return nil, fmt.Errorf("node '%s' already exists in workflow '%s'", name, w.Name())
	}
	def, ok := w.registry.Lookup(iface)
	if !ok {
		return nil, fmt.Errorf("node '%s': unknown interface '%s'", name, iface)
	}

	var o nodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	if len(o.fields) > 0 && !def.Dynamic {
		return nil, fmt.Errorf("node '%s': interface '%s' has a fixed field list", name, iface)
	}
	for _, f := range o.fields {
		if !nodeid.ValidName(f) {
			return nil, fmt.Errorf("node '%s': invalid field name %q", name, f)
		}
	}
	if o.nProcs < 0 {
		return nil, fmt.Errorf("node '%s': n_procs must not be negative, got %d", name, o.nProcs)
	}

	node := &Node{
		Address:              w.address.Child(name),
		Interface:            def,
		Fields:               slices.Clone(o.fields),
		Inputs:               make(map[string]cty.Value, len(o.inputs)),
		NProcs:               o.nProcs,
		RunWithoutSubmitting: o.runWithoutSubmitting,
	}
	for field, v := range o.inputs {
		if err := w.setInput(node, field, v); err != nil {
			return nil, err
		}
	}

	w.nodes = append(w.nodes, node)
	w.byName[name] = node
	ctxlog.FromContext(ctx).Debug("Node added.", "node", node.Address.String(), "interface", iface)
	return node, nil
}

// SetInput assigns a static value to an input of an existing node. name
// is resolved as in Node.
func (w *Workflow) SetInput(name, field string, v cty.Value) error {
	node, ok := w.lookup(name)
	if !ok {
		return fmt.Errorf("node '%s' not found in workflow '%s'", name, w.Name())
	}
	return w.setInput(node, field, v)
}

func (w *Workflow) setInput(node *Node, field string, v cty.Value) error {
	if !node.HasInput(field) {
		return fmt.Errorf("node '%s': interface '%s' has no input '%s'", node.Name(), node.Interface.Name, field)
	}
	if !v.IsWhollyKnown() {
		return fmt.Errorf("node '%s': input '%s' must be a known value", node.Name(), field)
	}
	node.Inputs[field] = v
	return nil
}

// Connect feeds srcField of node src into dstField of node dst. Each input
// may be fed by at most one connection.
func (w *Workflow) Connect(ctx context.Context, src, srcField, dst, dstField string) error {
	from, ok := w.byName[src]
	if !ok {
		return fmt.Errorf("cannot connect '%s.%s': node '%s' not found", src, srcField, src)
	}
	to, ok := w.byName[dst]
	if !ok {
		return fmt.Errorf("cannot connect to '%s.%s': node '%s' not found", dst, dstField, dst)
	}
	if src == dst {
		return fmt.Errorf("cannot connect node '%s' to itself", src)
	}
	if !from.HasOutput(srcField) {
		return fmt.Errorf("node '%s': interface '%s' has no output '%s'", src, from.Interface.Name, srcField)
	}
	if !to.HasInput(dstField) {
		return fmt.Errorf("node '%s': interface '%s' has no input '%s'", dst, to.Interface.Name, dstField)
	}
	for _, c := range w.connections {
		if c.Dest == dst && c.DestField == dstField {
			return fmt.Errorf("input '%s.%s' is already connected from '%s.%s'", dst, dstField, c.Source, c.SourceField)
		}
	}

	w.connections = append(w.connections, &Connection{Source: src, SourceField: srcField, Dest: dst, DestField: dstField})
	ctxlog.FromContext(ctx).Debug("Nodes connected.", "from", src+"."+srcField, "to", dst+"."+dstField)
	return nil
}

// ConnectMany connects every field pair from src to dst, stopping at the
// first failure.
func (w *Workflow) ConnectMany(ctx context.Context, src, dst string, pairs ...FieldPair) error {
	for _, p := range pairs {
		if err := w.Connect(ctx, src, p.From, dst, p.To); err != nil {
			return err
		}
	}
	return nil
}

// Node returns the node called name. name may also be the node's dotted
// address, as listed by ListNodeNames.
func (w *Workflow) Node(name string) (*Node, bool) {
	return w.lookup(name)
}

func (w *Workflow) lookup(name string) (*Node, bool) {
	if n, ok := w.byName[name]; ok {
		return n, true
	}
	addr, err := nodeid.Parse(name)
	if err != nil || !w.address.Equal(addr.Parent()) {
		return nil, false
	}
	n, ok := w.byName[addr.Last()]
	return n, ok
}

// Nodes returns every node in insertion order.
func (w *Workflow) Nodes() []*Node {
	return slices.Clone(w.nodes)
}

// Connections returns every connection in insertion order.
func (w *Workflow) Connections() []*Connection {
	return slices.Clone(w.connections)
}

// ListNodeNames returns the full dotted address of every node.
func (w *Workflow) ListNodeNames() []string {
	names := make([]string, len(w.nodes))
	for i, n := range w.nodes {
		names[i] = n.Address.String()
	}
	return names
}

// graph builds the node dependency graph from the connections.
func (w *Workflow) graph() (*dag.Graph, error) {
	g := dag.New()
	for _, n := range w.nodes {
		g.AddNode(n.Name())
	}
	for _, c := range w.connections {
		if err := g.AddEdge(c.Source, c.Dest); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Validate checks that the workflow is acyclic and that every mandatory
// input is either assigned or connected.
func (w *Workflow) Validate(ctx context.Context) error {
	g, err := w.graph()
	if err != nil {
		return err
	}
	if err := g.DetectCycles(); err != nil {
		return fmt.Errorf("workflow '%s': %w", w.Name(), err)
	}

	fed := make(map[string]struct{}, len(w.connections))
	for _, c := range w.connections {
		fed[c.Dest+"."+c.DestField] = struct{}{}
	}
	var errs []error
	for _, n := range w.nodes {
		for _, in := range n.Interface.Inputs {
			if !in.Mandatory {
				continue
			}
			if _, ok := n.Inputs[in.Name]; ok {
				continue
			}
			if _, ok := fed[n.Name()+"."+in.Name]; ok {
				continue
			}
			errs = append(errs, fmt.Errorf("node '%s': mandatory input '%s' is neither set nor connected", n.Name(), in.Name))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	ctxlog.FromContext(ctx).Debug("Workflow validated.", "workflow", w.Name(), "nodes", len(w.nodes), "connections", len(w.connections))
	return nil
}

// TopologicalOrder returns the node names so that every node follows the
// nodes it receives data from.
func (w *Workflow) TopologicalOrder() ([]string, error) {
	g, err := w.graph()
	if err != nil {
		return nil, err
	}
	return g.TopologicalOrder()
}
