package app

import (
	"github.com/vk/qsirecon/internal/config"
)

// Config holds the startup options of an App instance. Zero values leave
// the corresponding process configuration untouched.
type Config struct {
	// ConfigPath is the HCL process configuration file.
	ConfigPath string
	// InterfacesPath is a directory of extra interface manifests.
	InterfacesPath string
	// SchemaPath replaces the embedded pyAFQ argument schema.
	SchemaPath string

	LogLevel    string
	LogFormat   string
	OMPNThreads int
	OutputDir   string
}

// apply overlays the non-zero options on cfg.
func (c *Config) apply(cfg *config.Config) {
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.LogFormat != "" {
		cfg.Log.Format = c.LogFormat
	}
	if c.OMPNThreads > 0 {
		cfg.Nipype.OMPNThreads = c.OMPNThreads
		if cfg.Nipype.NProcs < c.OMPNThreads {
			cfg.Nipype.NProcs = c.OMPNThreads
		}
	}
	if c.OutputDir != "" {
		cfg.Execution.OutputDir = c.OutputDir
	}
}
