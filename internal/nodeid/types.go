package nodeid

// Address is the structured representation of a node's fully qualified name,
// e.g. `afq.run_afq`. The first segment is the outermost workflow.
type Address struct {
	Path []string
}

// New builds an address from already validated segments.
func New(segments ...string) *Address {
	path := make([]string, len(segments))
	copy(path, segments)
	return &Address{Path: path}
}

// Last returns the innermost segment, i.e. the node's own name.
func (a *Address) Last() string {
	if a == nil || len(a.Path) == 0 {
		return ""
	}
	return a.Path[len(a.Path)-1]
}

// Parent returns the address of the enclosing workflow, or nil for a
// top-level name.
func (a *Address) Parent() *Address {
	if a == nil || len(a.Path) < 2 {
		return nil
	}
	return New(a.Path[:len(a.Path)-1]...)
}

// Child returns a new address one level below a.
func (a *Address) Child(name string) *Address {
	if a == nil {
		return New(name)
	}
	return New(append(append([]string{}, a.Path...), name)...)
}
