// Package hcl provides the concrete HCL implementation for the configuration
// loading and value conversion interfaces defined in the `config` package.
// It is responsible for all file parsing, HCL-to-model translation, and the
// conversion of raw user parameter values into cty values.
package hcl
