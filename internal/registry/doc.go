// Package registry provides the central "glue" for the module system.
//
// The Registry stores two kinds of mappings. The first is the declaration
// table: module name to its Declaration (the ordered dependency list plus the
// factory that produces the module's value), populated through Define and
// consumed by the loader. The second is the factory-builder table, mapping
// the string identifiers used in manifests (e.g., "EnvVars") to the compiled
// Go constructors that implement them, so manifest files can wire declared
// modules to Go code.
//
// During application startup, the registry is populated and then validated to
// ensure that the Go code and the public-facing manifests are perfectly in
// sync, preventing a wide class of runtime errors.
package registry
