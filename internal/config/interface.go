package config

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// LoadProcessConfig reads the process-wide configuration file at path and
	// overlays it on base. An empty path returns base unchanged.
	LoadProcessConfig(ctx context.Context, path string, base Config) (*Config, error)

	// LoadArgumentSchema parses a tool argument schema.
	LoadArgumentSchema(ctx context.Context, src []byte, filename string) (*ArgumentSchema, error)

	// LoadInterfaces parses an interface manifest.
	LoadInterfaces(ctx context.Context, src []byte, filename string) ([]*InterfaceDefinition, error)
}

// Converter turns raw, loosely typed configuration values (as decoded from a
// human-edited file) into typed cty values.
type Converter interface {
	ConvertValue(raw any) (cty.Value, error)
}

// ConverterFunc adapts an ordinary function to the Converter interface.
type ConverterFunc func(raw any) (cty.Value, error)

// ConvertValue calls f(raw).
func (f ConverterFunc) ConvertValue(raw any) (cty.Value, error) {
	return f(raw)
}
