package config

import (
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of the entire
// application configuration: every module definition plus the declared
// entrypoints.
type Model struct {
	// Modules preserves file order so that a later definition of the same
	// name overwrites an earlier one when translated into the registry.
	Modules []*ModuleDefinition

	// Entrypoints lists the module names to resolve at startup, in declared
	// order.
	Entrypoints []string
}

// ModuleDefinition is the format-agnostic representation of a `module` block.
type ModuleDefinition struct {
	// Name is the unique module name other modules use in `requires`.
	Name string

	// Requires is the ordered dependency list as written in the manifest.
	// The reserved spelling "exports" is translated to the synthetic exports
	// dependency when the definition enters the registry.
	Requires []string

	// Factory names the compiled Go factory builder producing this module.
	Factory string

	// Params holds the evaluated `params` attribute, passed verbatim to the
	// factory builder.
	Params map[string]cty.Value
}
