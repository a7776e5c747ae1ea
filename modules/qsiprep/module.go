// Package qsiprep registers the data-access and image interfaces that
// qsiprep defines itself.
package qsiprep

import (
	"embed"
	"path"

	"github.com/vk/qsirecon/internal/registry"
)

//go:embed manifests/*.hcl
var manifests embed.FS

// Source is the source package prefix of every interface in this module.
const Source = "qsiprep"

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
		r.MustLoadManifest(src, "qsiprep/"+name)
	}
}
