package afq

import (
	"sort"

	"github.com/vk/qsirecon/internal/hcl"
	"github.com/zclconf/go-cty/cty"
)

// Arguments are the translated keyword arguments of a pyAFQ session.
//
// Ordinary arguments live in Values and parameter groups in Groups. Both
// share one key space: setting a key in one removes it from the other.
type Arguments struct {
	Values map[string]cty.Value
	Groups map[string]map[string]cty.Value
}

// NewArguments returns an empty argument set.
func NewArguments() *Arguments {
	return &Arguments{
		Values: make(map[string]cty.Value),
		Groups: make(map[string]map[string]cty.Value),
	}
}

// Set stores an ordinary argument.
func (a *Arguments) Set(key string, v cty.Value) {
	delete(a.Groups, key)
	a.Values[key] = v
}

// Get returns an ordinary argument.
func (a *Arguments) Get(key string) (cty.Value, bool) {
	v, ok := a.Values[key]
	return v, ok
}

// Group returns the parameter group stored under name.
func (a *Arguments) Group(name string) (map[string]cty.Value, bool) {
	g, ok := a.Groups[name]
	return g, ok
}

// EnsureGroup returns the parameter group stored under name, creating an
// empty one if it does not exist yet.
func (a *Arguments) EnsureGroup(name string) map[string]cty.Value {
	if g, ok := a.Groups[name]; ok {
		return g
	}
	delete(a.Values, name)
	g := make(map[string]cty.Value)
	a.Groups[name] = g
	return g
}

// Has reports whether key is set at the top level, as a value or a group.
func (a *Arguments) Has(key string) bool {
	_, isValue := a.Values[key]
	_, isGroup := a.Groups[key]
	return isValue || isGroup
}

// Delete removes key from the top level. Keys inside groups are not touched.
func (a *Arguments) Delete(key string) {
	delete(a.Values, key)
	delete(a.Groups, key)
}

// Keys returns every top-level key, sorted.
func (a *Arguments) Keys() []string {
	keys := make([]string, 0, len(a.Values)+len(a.Groups))
	for k := range a.Values {
		keys = append(keys, k)
	}
	for k := range a.Groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of top-level keys.
func (a *Arguments) Len() int {
	return len(a.Values) + len(a.Groups)
}

// Value returns the arguments as a single object, with every group as a
// nested object.
func (a *Arguments) Value() cty.Value {
	if a.Len() == 0 {
		return cty.EmptyObjectVal
	}
	attrs := make(map[string]cty.Value, a.Len())
	for k, v := range a.Values {
		attrs[k] = v
	}
	for name, g := range a.Groups {
		if len(g) == 0 {
			attrs[name] = cty.EmptyObjectVal
			continue
		}
		attrs[name] = cty.ObjectVal(g)
	}
	return cty.ObjectVal(attrs)
}

// String renders the arguments on one line with sorted keys.
func (a *Arguments) String() string {
	return hcl.FormatValue(a.Value())
}
