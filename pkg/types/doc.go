// Package types defines the core data structures for the flow dispatch layer.
//
// This package contains the fundamental types shared by the resolvers, the
// RPC gateway and the flow analyzer, including:
//   - Dispatch methods, executors and execution references
//   - Flow nodes and flow instances
//   - Ordered RPC parameter lists
package types
