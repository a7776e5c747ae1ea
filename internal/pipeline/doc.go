// Package pipeline models a workflow-engine graph: named nodes built from
// registered interfaces, and connections between their fields.
//
// A Workflow is assembled as data. Every node and connection is checked
// against the interface registry when it is added, so a graph that builds
// without error only refers to fields its interfaces declare. The finished
// graph is handed to the engine as an HCL document produced by Encode.
package pipeline
