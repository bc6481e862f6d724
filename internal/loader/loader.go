package loader

import (
	"context"
	"fmt"

	"github.com/vk/modgridgo/internal/ctxlog"
	"github.com/vk/modgridgo/internal/registry"
)

// Loader resolves module values against a registry, memoizing each module's
// export so its factory runs at most once for the lifetime of the Loader.
type Loader struct {
	reg   *registry.Registry
	cache map[string]any
}

// New creates a Loader over the given registry. The cache starts empty and is
// never cleared; construct a fresh Loader to force re-instantiation.
func New(reg *registry.Registry) *Loader {
	return &Loader{
		reg:   reg,
		cache: make(map[string]any),
	}
}

// Resolve returns the exported value of the named module, resolving its
// transitive dependencies on demand. Repeated calls for the same name return
// the identical cached value. A module whose resolution fails is not cached,
// so a later call re-attempts it from scratch.
func (l *Loader) Resolve(ctx context.Context, name string) (any, error) {
	return l.resolve(ctx, name, nil)
}

// Resolved reports whether the named module has already been instantiated.
func (l *Loader) Resolved(name string) bool {
	_, ok := l.cache[name]
	return ok
}

// ResolvedCount returns the number of instantiated modules.
func (l *Loader) ResolvedCount() int {
	return len(l.cache)
}

// resolve is the recursive worker. path holds the names currently being
// resolved on the active call chain, outermost first; it is passed by value
// so unwinding needs no explicit cleanup.
func (l *Loader) resolve(ctx context.Context, name string, path []string) (any, error) {
	if v, ok := l.cache[name]; ok {
		return v, nil
	}

	decl, ok := l.reg.Lookup(name)
	if !ok {
		return nil, &NotFoundError{Name: name, Referrer: lastOf(path)}
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving module.", "name", name, "depth", len(path))

	// Full slice expression, so sibling branches appending at the same depth
	// cannot share a backing array.
	path = append(path[:len(path):len(path)], name)

	args := make([]any, len(decl.Deps))
	var exports map[string]any

	for i, dep := range decl.Deps {
		if dep.Kind == registry.KindExports {
			if exports == nil {
				exports = make(map[string]any)
				// Publish the provisional exports object before recursing so
				// a mutually dependent module can obtain it from the cache
				// instead of tripping the cycle check.
				l.cache[name] = exports
			}
			args[i] = exports
			continue
		}

		// Settled modules bypass the cycle check entirely. This is what lets
		// a mutual exports pair work: the partner finds the provisional
		// exports object here instead of its own name on the path.
		if v, ok := l.cache[dep.Name]; ok {
			args[i] = v
			continue
		}

		// Checked before recursing; unbounded recursion is the alternative.
		if onPath(path, dep.Name) {
			l.discard(name, exports)
			return nil, &CycleError{Module: name, Dependency: dep.Name}
		}

		v, err := l.resolve(ctx, dep.Name, path)
		if err != nil {
			l.discard(name, exports)
			return nil, err
		}
		args[i] = v
	}

	v, err := decl.Factory(ctx, args)
	if err != nil {
		l.discard(name, exports)
		return nil, fmt.Errorf("factory for module '%s' failed: %w", name, err)
	}

	if v == nil && exports != nil {
		v = exports
	}

	l.cache[name] = v
	logger.Debug("Module resolved.", "name", name)
	return v, nil
}

// discard removes the provisional exports entry for a module whose
// resolution failed, keeping the invariant that failed modules are absent
// from the cache.
func (l *Loader) discard(name string, exports map[string]any) {
	if exports != nil {
		delete(l.cache, name)
	}
}

func lastOf(path []string) string {
	if len(path) == 0 {
		return ""
	}
	return path[len(path)-1]
}

func onPath(path []string, name string) bool {
	for _, p := range path {
		if p == name {
			return true
		}
	}
	return false
}
