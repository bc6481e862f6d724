package registry

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// DepKind discriminates the two kinds of dependency a module can declare.
type DepKind int

const (
	// KindModule is a reference to another declared module by name.
	KindModule DepKind = iota
	// KindExports asks the loader to synthesize a fresh mutable exports
	// object and pass it as the corresponding factory argument.
	KindExports
)

// Dep is a single entry in a module's ordered dependency list.
type Dep struct {
	Kind DepKind
	Name string // only set for KindModule
}

// ModuleDep returns a dependency on the named module.
func ModuleDep(name string) Dep {
	return Dep{Kind: KindModule, Name: name}
}

// ExportsDep returns the synthetic exports-object dependency.
func ExportsDep() Dep {
	return Dep{Kind: KindExports}
}

// String renders the dependency the way a manifest would spell it.
func (d Dep) String() string {
	if d.Kind == KindExports {
		return "exports"
	}
	return d.Name
}

// Factory computes a module's exported value from its resolved dependencies.
// args holds one value per declared dependency, in declared order. A factory
// returning (nil, nil) exports nil unless an exports object was synthesized
// for it, in which case that object becomes the export.
type Factory func(ctx context.Context, args []any) (any, error)

// FactoryBuilder constructs a Factory from the params block of a manifest
// module definition. Builders are registered by name so manifests can refer
// to compiled Go code.
type FactoryBuilder func(params map[string]cty.Value) Factory

// Declaration is the record stored for a defined module. It is owned by the
// Registry once defined and must not be mutated afterwards.
type Declaration struct {
	Name    string
	Deps    []Dep
	Factory Factory
}
