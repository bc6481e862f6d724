package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/modgridgo/internal/config"
	"github.com/vk/modgridgo/internal/ctxlog"
)

// ValidateModel performs a strict parity check between the loaded manifests
// and the compiled Go code: every factory a manifest references must be
// registered in this binary. Dependency names are deliberately NOT validated
// here; resolution reports unknown modules lazily, and the graph checker
// offers an eager opt-in pass.
func (r *Registry) ValidateModel(ctx context.Context, model *config.Model) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for _, def := range model.Modules {
		if def.Factory == "" {
			errs = append(errs, fmt.Sprintf("module '%s': manifest declares no factory", def.Name))
			continue
		}
		if _, ok := r.factories[def.Factory]; !ok {
			errs = append(errs, fmt.Sprintf("module '%s': manifest references factory '%s' which is not compiled into this binary", def.Name, def.Factory))
		}
	}

	for _, entry := range model.Entrypoints {
		if entry == "" {
			errs = append(errs, "entrypoint block declares an empty module name")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n - %s", strings.Join(errs, "\n - "))
	}

	logger.Debug("Registry validation passed.", "modules", len(model.Modules))
	return nil
}
