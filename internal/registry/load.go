package registry

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/qsirecon/internal/ctxlog"
	"github.com/vk/qsirecon/internal/fsutil"
)

// LoadManifest parses an interface manifest and registers every interface it
// declares. Unlike Register, a duplicate name is reported as an error.
func (r *Registry) LoadManifest(ctx context.Context, src []byte, filename string) error {
	defs, err := r.loader.LoadInterfaces(ctx, src, filename)
	if err != nil {
		return err
	}
	for _, def := range defs {
		if err := r.add(def); err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
	}
	return nil
}

// LoadManifestsRecursively registers the interfaces declared in every .hcl
// file below dir.
func (r *Registry) LoadManifestsRecursively(ctx context.Context, dir string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading interface manifests from path...", "path", dir)

	filePaths, err := fsutil.FindFilesByExtension(dir, ".hcl")
	if err != nil {
		logger.Error("Failed to walk interfaces directory", "path", dir, "error", err)
		return err
	}

	if len(filePaths) == 0 {
		logger.Warn("No .hcl interface manifests found in path", "path", dir)
		return nil
	}

	for _, filePath := range filePaths {
		src, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read interface manifest %s: %w", filePath, err)
		}
		if err := r.LoadManifest(ctx, src, filePath); err != nil {
			return err
		}
		logger.Debug("Successfully loaded interfaces from HCL file", "file", filePath)
	}

	logger.Info("Interface manifests loaded.", "files", len(filePaths), "interfaces_registered", r.Len())
	return nil
}
