// Package config defines the format-agnostic configuration model for the
// application, along with the core interfaces (Loader, Converter) for
// loading and interpreting configuration from various sources.
//
// The models here are the single source of truth for the registry, afq and
// pipeline packages. Concrete implementations of the interfaces, such as
// for HCL, are provided in separate packages.
package config
