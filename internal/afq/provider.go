package afq

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/vk/qsirecon/internal/config"
)

// Schema is the argument schema of the pyAFQ session.
type Schema = config.ArgumentSchema

//go:embed schema/pyafq.hcl
var embeddedSchema []byte

// embeddedSchemaName is the filename reported in diagnostics for the
// embedded schema.
const embeddedSchemaName = "afq/schema/pyafq.hcl"

// SchemaProvider returns the current argument schema. Implementations parse
// the schema on every call; callers must not cache it across workflow builds.
type SchemaProvider interface {
	Schema(ctx context.Context) (*Schema, error)
}

// Provider loads the schema from a file when Path is set and from the copy
// compiled into the binary otherwise.
type Provider struct {
	loader config.Loader
	path   string
}

var _ SchemaProvider = (*Provider)(nil)

// NewProvider creates a schema provider. An empty path selects the embedded
// schema.
func NewProvider(loader config.Loader, path string) *Provider {
	return &Provider{loader: loader, path: path}
}

// Schema implements SchemaProvider.
func (p *Provider) Schema(ctx context.Context) (*Schema, error) {
	if p.path == "" {
		return p.loader.LoadArgumentSchema(ctx, embeddedSchema, embeddedSchemaName)
	}
	src, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read argument schema: %w", err)
	}
	return p.loader.LoadArgumentSchema(ctx, src, p.path)
}

// Source describes where the schema is read from.
func (p *Provider) Source() string {
	if p.path == "" {
		return "embedded"
	}
	return p.path
}
