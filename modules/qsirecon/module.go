// Package qsirecon registers the interfaces the reconstruction workflows are
// built from: the engine's identity node, the pyAFQ runner and the
// reconstruction derivatives sink.
package qsirecon

import (
	"embed"
	"path"

	"github.com/vk/qsirecon/internal/registry"
)

//go:embed manifests/*.hcl
var manifests embed.FS

// Interface names used by the workflow builders.
const (
	IdentityInterface        = "IdentityInterface"
	PyAFQRecon               = "PyAFQRecon"
	ReconDerivativesDataSink = "ReconDerivativesDataSink"
)

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
		r.MustLoadManifest(src, "qsirecon/"+name)
	}
}
