// Package project holds the project and flow definitions the dispatch layer
// reads but does not own: the property lookup service, the project registry,
// static flow definitions, and a YAML loader for flow bundles used by the CLI.
package project
