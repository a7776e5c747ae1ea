// Package registry provides the flat namespace of workflow-engine interfaces.
//
// Interfaces come from several source packages (qsiprep's own, the fmriprep
// interfaces it re-exports, and the qsirecon reconstruction interfaces).
// Each source is a Module that loads its manifest into a shared Registry, so
// workflow code looks every interface up by its bare name without caring
// where it was defined.
//
// During application startup, the registry is populated and then validated
// so that malformed manifests fail fast instead of surfacing while a
// workflow is being wired.
package registry
