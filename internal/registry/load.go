package registry

import (
	"context"
	"fmt"

	"github.com/vk/modgridgo/internal/config"
	"github.com/vk/modgridgo/internal/ctxlog"
)

// exportsName is the manifest spelling of the synthetic exports dependency.
// It exists only at this boundary; the loader itself never compares strings.
const exportsName = "exports"

// DefineFromModel translates every module definition in the loaded config
// model into a declaration, in file order, so that a later definition of the
// same name overwrites an earlier one.
func (r *Registry) DefineFromModel(ctx context.Context, model *config.Model) error {
	logger := ctxlog.FromContext(ctx)

	for _, def := range model.Modules {
		builder, ok := r.factories[def.Factory]
		if !ok {
			return fmt.Errorf("module '%s' references unknown factory '%s'", def.Name, def.Factory)
		}

		deps := make([]Dep, len(def.Requires))
		for i, req := range def.Requires {
			if req == exportsName {
				deps[i] = ExportsDep()
			} else {
				deps[i] = ModuleDep(req)
			}
		}

		r.Define(def.Name, deps, builder(def.Params))
		logger.Debug("Module defined from manifest.", "name", def.Name, "factory", def.Factory, "dep_count", len(deps))
	}

	logger.Debug("All manifest modules defined.", "count", len(model.Modules))
	return nil
}
