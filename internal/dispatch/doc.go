// Package dispatch routes control and status RPCs of a flow execution to the
// process that runs it.
//
// An execution runs either inside a long-lived bare-metal executor or inside a
// per-execution container. The resolvers in this package turn an execution's
// dispatch method and the routing configuration into a network endpoint and a
// URL path; Gateway composes them into a single form-encoded POST and decodes
// the JSON reply.
//
// Nothing here retries, caches executor locations or picks executors. Calls
// are independent and share only read-only configuration, so a Gateway may be
// used from any number of goroutines.
package dispatch
