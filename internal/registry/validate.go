package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/qsirecon/internal/config"
	"github.com/vk/qsirecon/internal/ctxlog"
	"github.com/vk/qsirecon/internal/nodeid"
)

// Validate checks every registered interface for internal consistency and
// reports all problems at once.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for _, name := range r.Names() {
		def, _ := r.Lookup(name)

		if def.Source == "" {
			errs = append(errs, fmt.Sprintf("interface '%s': no source package", name))
		}
		if def.Dynamic {
			if len(def.Inputs) > 0 || len(def.Outputs) > 0 {
				errs = append(errs, fmt.Sprintf("interface '%s': dynamic interfaces must not declare fixed fields", name))
			}
			continue
		}
		if len(def.Outputs) == 0 {
			logger.Debug("Interface declares no outputs.", "interface", name)
		}

		errs = append(errs, checkFields(name, "input", def.Inputs)...)
		errs = append(errs, checkFields(name, "output", def.Outputs)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "interfaces", r.Len())
	return nil
}

func checkFields(iface, kind string, fields []*config.FieldDefinition) []string {
	var errs []string
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if !nodeid.ValidName(f.Name) {
			errs = append(errs, fmt.Sprintf("interface '%s': invalid %s name '%s'", iface, kind, f.Name))
		}
		if _, dup := seen[f.Name]; dup {
			errs = append(errs, fmt.Sprintf("interface '%s': %s '%s' declared more than once", iface, kind, f.Name))
		}
		seen[f.Name] = struct{}{}
	}
	return errs
}
