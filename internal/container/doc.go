// Package container analyzes a flow instance before it is launched in a
// per-execution container: which job-type images it needs, which rollout
// bucket its name falls into, and which identities its jobs impersonate.
//
// Every function here is a read-only walk of the flow tree. Nothing is
// cached between calls; flow property overrides may change from one launch
// to the next.
package container
