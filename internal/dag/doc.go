// Package dag is a small, concurrency-safe directed acyclic graph keyed by
// string IDs. The pipeline package uses it to keep the node-level topology
// of a workflow (which node feeds which) separate from the field-level
// connections, and to reject wiring that would introduce a cycle.
package dag
