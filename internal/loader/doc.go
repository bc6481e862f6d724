// Package loader implements the synchronous module resolver.
//
// A Loader wraps a registry and lazily instantiates a requested module
// together with its full transitive dependency graph, invoking each module's
// factory exactly once and caching the result. Resolution is a depth-first
// walk: dependencies are produced in declared order before the factory runs,
// a name re-encountered on its own active resolution path is reported as a
// circular dependency, and the synthetic exports dependency lets two
// mutually dependent modules see each other's (possibly still-being-populated)
// exports object without tripping the cycle check.
//
// The loader is single-threaded by contract. It provides no locking; callers
// in a multi-threaded environment must serialize Define and Resolve calls
// externally.
package loader
