// Package recon assembles the reconstruction workflows that run on top of
// preprocessed diffusion data. Each builder returns a pipeline.Workflow whose
// input node exposes the shared reconstruction fields.
package recon
