package registry

import (
	"fmt"
	"log/slog"
	"sort"
)

// Module is the interface that all compiled-in modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds all the declared modules and registered factory builders for
// a single application instance.
type Registry struct {
	declarations map[string]*Declaration
	factories    map[string]FactoryBuilder
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		declarations: make(map[string]*Declaration),
		factories:    make(map[string]FactoryBuilder),
	}
}

// Define records the declaration for name, overwriting any earlier
// declaration for the same name. The dependency list is not validated here;
// unknown names surface as errors at resolution time. Define never fails.
func (r *Registry) Define(name string, deps []Dep, factory Factory) {
	if _, exists := r.declarations[name]; exists {
		slog.Debug("Redefining module.", "name", name)
	}
	r.declarations[name] = &Declaration{
		Name:    name,
		Deps:    deps,
		Factory: factory,
	}
}

// Lookup returns the current declaration for name, if any. Pure read.
func (r *Registry) Lookup(name string) (*Declaration, bool) {
	decl, ok := r.declarations[name]
	return decl, ok
}

// Declarations returns all declarations sorted by module name, for
// deterministic diagnostics and graph construction.
func (r *Registry) Declarations() []*Declaration {
	decls := make([]*Declaration, 0, len(r.declarations))
	for _, d := range r.declarations {
		decls = append(decls, d)
	}
	sort.Slice(decls, func(i, j int) bool { return decls[i].Name < decls[j].Name })
	return decls
}

// RegisterFactory registers a Go factory builder under the name manifests use
// to reference it.
func (r *Registry) RegisterFactory(name string, builder FactoryBuilder) {
	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("factory builder with name '%s' already registered", name))
	}
	slog.Debug("Registering factory builder.", "name", name)
	r.factories[name] = builder
}

// FactoryBuilderFor returns the registered builder for the given manifest
// factory name.
func (r *Registry) FactoryBuilderFor(name string) (FactoryBuilder, bool) {
	b, ok := r.factories[name]
	return b, ok
}
