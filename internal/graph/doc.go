// Package graph is the eager startup linter for the module system. It builds
// a directed graph from a registry's declarations and reports unknown module
// references and cycles before any factory runs.
//
// This is purely additive diagnostics for the -check mode: the loader's lazy,
// path-based detection remains the authoritative behavior. A dependency
// declared after an exports dependency is treated as a soft edge: by the time
// the loader walks into it, the declaring module's provisional exports object
// is already cached, so a back-reference through that subtree resolves
// instead of deadlocking.
package graph
