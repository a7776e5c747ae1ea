// Package fmriprep registers the fmriprep interfaces that qsiprep re-exports,
// so workflow code resolves them by bare name like qsiprep's own.
package fmriprep

import (
	"embed"
	"path"

	"github.com/vk/qsirecon/internal/registry"
)

//go:embed manifests/*.hcl
var manifests embed.FS

// Source is the source package prefix of every interface in this module.
const Source = "fmriprep"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register loads every embedded manifest into r.
func (m *Module) Register(r *registry.Registry) {
	entries, err := manifests.ReadDir("manifests")
	if err != nil {
		panic(err)
	}
	for _, e := range entries {
		name := path.Join("manifests", e.Name())
		src, err := manifests.ReadFile(name)
		if err != nil {
			panic(err)
		}
		r.MustLoadManifest(src, "fmriprep/"+name)
	}
}
