package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/modgridgo/internal/ctxlog"
	"github.com/vk/modgridgo/internal/registry"
)

// FromRegistry builds a graph over every declaration in the registry.
// References to undeclared modules are reported, not added. Only hard edges
// enter the graph: once a declaration's exports dependency has been seen, its
// remaining deps are walked with the provisional exports object already
// cached, so a cycle closing through them resolves at runtime and is excluded
// from the eager check.
func FromRegistry(ctx context.Context, reg *registry.Registry) (*Graph, []string) {
	logger := ctxlog.FromContext(ctx)
	g := New()
	var problems []string

	decls := reg.Declarations()
	for _, decl := range decls {
		g.AddNode(decl.Name)
	}

	for _, decl := range decls {
		exportsSeen := false
		for _, dep := range decl.Deps {
			if dep.Kind == registry.KindExports {
				exportsSeen = true
				continue
			}
			if _, ok := reg.Lookup(dep.Name); !ok {
				problems = append(problems, fmt.Sprintf("module '%s' requires undeclared module '%s'", decl.Name, dep.Name))
				continue
			}
			if exportsSeen {
				continue
			}
			if err := g.AddEdge(decl.Name, dep.Name); err != nil {
				problems = append(problems, err.Error())
			}
		}
	}

	logger.Debug("Graph built from registry.", "modules", len(decls), "problems", len(problems))
	return g, problems
}

// Check builds the declaration graph and returns an error describing every
// unknown reference found, plus the first cycle if one exists.
func Check(ctx context.Context, reg *registry.Registry) error {
	g, problems := FromRegistry(ctx, reg)

	if err := g.DetectCycles(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("module graph check failed:\n - %s", strings.Join(problems, "\n - "))
	}

	ctxlog.FromContext(ctx).Debug("Module graph check passed.")
	return nil
}
