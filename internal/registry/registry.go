package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/vk/qsirecon/internal/config"
)

// Module is the interface that all interface sources must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds every registered interface definition for a single
// application instance.
type Registry struct {
	mu         sync.RWMutex
	loader     config.Loader
	interfaces map[string]*config.InterfaceDefinition
}

// New creates and initializes a new Registry. The loader is used to parse
// interface manifests.
func New(loader config.Loader) *Registry {
	return &Registry{
		loader:     loader,
		interfaces: make(map[string]*config.InterfaceDefinition),
	}
}

// Register adds a single interface definition. Registering the same name
// twice is a programmer error and panics.
func (r *Registry) Register(def *config.InterfaceDefinition) {
	if err := r.add(def); err != nil {
		panic(err.Error())
	}
}

func (r *Registry) add(def *config.InterfaceDefinition) error {
	if def == nil || def.Name == "" {
		return fmt.Errorf("interface definition must have a name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.interfaces[def.Name]; exists {
		return fmt.Errorf("interface '%s' already registered from '%s'", def.Name, existing.Source)
	}
	slog.Debug("Registering interface.", "name", def.Name, "source", def.Source)
	r.interfaces[def.Name] = def
	return nil
}

// MustLoadManifest parses an embedded manifest and registers every interface
// it declares. Embedded manifests ship with the binary, so any failure panics.
func (r *Registry) MustLoadManifest(src []byte, filename string) {
	if err := r.LoadManifest(context.Background(), src, filename); err != nil {
		panic(err.Error())
	}
}

// Lookup returns the interface registered under name.
func (r *Registry) Lookup(name string) (*config.InterfaceDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.interfaces[name]
	return def, ok
}

// MustLookup is like Lookup but panics when name is not registered. Workflow
// builders use it for interfaces shipped with the binary.
func (r *Registry) MustLookup(name string) *config.InterfaceDefinition {
	def, ok := r.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("interface '%s' is not registered", name))
	}
	return def
}

// Len returns the number of registered interfaces.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.interfaces)
}

// Names returns every registered interface name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.interfaces))
	for name := range r.interfaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BySource returns the interfaces whose source equals prefix or lies below
// it (e.g. "fmriprep" matches "fmriprep.interfaces.itk"), sorted by name.
// An empty prefix returns everything.
func (r *Registry) BySource(prefix string) []*config.InterfaceDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var defs []*config.InterfaceDefinition
	for _, def := range r.interfaces {
		if prefix == "" || def.Source == prefix || strings.HasPrefix(def.Source, prefix+".") {
			defs = append(defs, def)
		}
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}
