/*
Package nodeid provides a structured representation for hierarchical node
names inside a workflow, based on the canonical dotted format
`workflow.subworkflow.node`.

Every segment must be a valid node name: letters, digits and underscores,
not starting with a digit. This mirrors what the external workflow engine
accepts, so names that round-trip through this package are safe to hand on.
*/
package nodeid
