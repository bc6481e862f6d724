package hcl

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modgridgo/internal/config"
)

// translateModule converts a decoded module block into the format-agnostic
// definition. The params attribute is evaluated eagerly, with no variable
// scope, so manifests stay declarative.
func translateModule(block *moduleBlock) (*config.ModuleDefinition, error) {
	def := &config.ModuleDefinition{
		Name:     block.Name,
		Requires: block.Requires,
		Factory:  block.Factory,
		Params:   map[string]cty.Value{},
	}

	if block.Params == nil {
		return def, nil
	}

	val, diags := block.Params.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("module '%s': invalid params: %w", block.Name, diags)
	}
	if val.IsNull() {
		return def, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("module '%s': params must be an object, got %s", block.Name, val.Type().FriendlyName())
	}

	def.Params = val.AsValueMap()
	return def, nil
}
