package print

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modgridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Out is where resolved values are printed. Swapped out in tests.
var Out io.Writer = os.Stdout

// NewFactory builds the Print factory: a sink module that prints each of its
// resolved dependencies. The optional `label` param prefixes the output. The
// module exports nil.
func NewFactory(params map[string]cty.Value) registry.Factory {
	label := registry.StringParam(params, "label", "")

	return func(ctx context.Context, args []any) (any, error) {
		slog.Info("Printing resolved modules.", "label", label, "count", len(args))

		for i, arg := range args {
			prefix := fmt.Sprintf("%d", i)
			if label != "" {
				prefix = fmt.Sprintf("%s.%d", label, i)
			}
			printValue(prefix, arg)
		}

		return nil, nil
	}
}

func printValue(prefix string, v any) {
	switch m := v.(type) {
	case map[string]string:
		// Sort keys for consistent output.
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(Out, "      %s: %s = %q\n", prefix, k, m[k])
		}
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(Out, "      %s: %s = %v\n", prefix, k, m[k])
		}
	case nil:
		fmt.Fprintf(Out, "      %s: (null)\n", prefix)
	default:
		fmt.Fprintf(Out, "      %s: %v\n", prefix, v)
	}
}

// Register registers the factory builder with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFactory("Print", NewFactory)
}
