// Package app encapsulates the application's dependencies, configuration,
// and lifecycle: logger setup, manifest loading, registry population and
// validation, and resolving the configured entrypoints.
package app
