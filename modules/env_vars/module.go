package env_vars

import (
	"context"
	"os"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modgridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// NewFactory builds the EnvVars factory. The optional `prefix` param limits
// the export to variables whose name starts with the prefix.
func NewFactory(params map[string]cty.Value) registry.Factory {
	prefix := registry.StringParam(params, "prefix", "")

	return func(ctx context.Context, args []any) (any, error) {
		envMap := make(map[string]string)
		for _, e := range os.Environ() {
			pair := strings.SplitN(e, "=", 2)
			if len(pair) != 2 {
				continue
			}
			if prefix != "" && !strings.HasPrefix(pair[0], prefix) {
				continue
			}
			envMap[pair[0]] = pair[1]
		}
		return envMap, nil
	}
}

// Register registers the factory builder with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFactory("EnvVars", NewFactory)
}
