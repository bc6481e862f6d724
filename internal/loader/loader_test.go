package loader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/modgridgo/internal/registry"
)

// value returns a factory exporting a fixed value and counting invocations.
func value(v any, calls *int) registry.Factory {
	return func(ctx context.Context, args []any) (any, error) {
		if calls != nil {
			*calls++
		}
		return v, nil
	}
}

func TestResolve_Memoization(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	calls := 0
	reg.Define("config", nil, func(ctx context.Context, args []any) (any, error) {
		calls++
		return map[string]any{"port": 8080}, nil
	})

	l := New(reg)
	first, err := l.Resolve(context.Background(), "config")
	require.NoError(t, err)
	second, err := l.Resolve(context.Background(), "config")
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "factory must run exactly once")

	// Same instance, not just an equal value: a write through the first
	// result must be visible through the second.
	firstMap := first.(map[string]any)
	secondMap := second.(map[string]any)
	firstMap["probe"] = true
	assert.Contains(t, secondMap, "probe", "both calls must return the identical instance")
}

func TestResolve_DependencyOrdering(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	var order []string
	track := func(name string, v any) registry.Factory {
		return func(ctx context.Context, args []any) (any, error) {
			order = append(order, name)
			return v, nil
		}
	}

	reg.Define("logger", nil, track("logger", "logger-value"))
	reg.Define("store", nil, track("store", "store-value"))
	reg.Define("app", []registry.Dep{registry.ModuleDep("logger"), registry.ModuleDep("store")},
		func(ctx context.Context, args []any) (any, error) {
			order = append(order, "app")
			require.Equal(t, []any{"logger-value", "store-value"}, args, "factory args follow declared order")
			return "app-value", nil
		})

	l := New(reg)
	v, err := l.Resolve(context.Background(), "app")
	require.NoError(t, err)
	assert.Equal(t, "app-value", v)
	assert.Equal(t, []string{"logger", "store", "app"}, order, "deps fully resolve before the dependent factory runs")
}

func TestResolve_NotFound(t *testing.T) {
	t.Parallel()

	t.Run("root module missing", func(t *testing.T) {
		l := New(registry.New())
		_, err := l.Resolve(context.Background(), "ghost")

		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "ghost", notFound.Name)
		assert.Empty(t, notFound.Referrer)
	})

	t.Run("transitive dependency missing names the referrer", func(t *testing.T) {
		reg := registry.New()
		reg.Define("a", []registry.Dep{registry.ModuleDep("y")}, value("a", nil))

		l := New(reg)
		_, err := l.Resolve(context.Background(), "a")

		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "y", notFound.Name)
		assert.Equal(t, "a", notFound.Referrer)
	})
}

func TestResolve_CycleDetection(t *testing.T) {
	t.Parallel()

	t.Run("direct cycle fails naming both modules", func(t *testing.T) {
		reg := registry.New()
		reg.Define("a", []registry.Dep{registry.ModuleDep("b")}, value("a", nil))
		reg.Define("b", []registry.Dep{registry.ModuleDep("a")}, value("b", nil))

		l := New(reg)
		_, err := l.Resolve(context.Background(), "a")

		var cycle *CycleError
		require.ErrorAs(t, err, &cycle)
		assert.Equal(t, "b", cycle.Module)
		assert.Equal(t, "a", cycle.Dependency)
	})

	t.Run("self dependency fails", func(t *testing.T) {
		reg := registry.New()
		reg.Define("a", []registry.Dep{registry.ModuleDep("a")}, value("a", nil))

		l := New(reg)
		_, err := l.Resolve(context.Background(), "a")

		var cycle *CycleError
		require.ErrorAs(t, err, &cycle)
		assert.Equal(t, "a", cycle.Module)
		assert.Equal(t, "a", cycle.Dependency)
	})

	t.Run("mutual exports pair resolves", func(t *testing.T) {
		reg := registry.New()

		var seenByA, seenByB map[string]any
		reg.Define("a", []registry.Dep{registry.ExportsDep(), registry.ModuleDep("b")},
			func(ctx context.Context, args []any) (any, error) {
				exports := args[0].(map[string]any)
				exports["from"] = "a"
				seenByA = args[1].(map[string]any)
				return nil, nil
			})
		reg.Define("b", []registry.Dep{registry.ExportsDep(), registry.ModuleDep("a")},
			func(ctx context.Context, args []any) (any, error) {
				exports := args[0].(map[string]any)
				exports["from"] = "b"
				seenByB = args[1].(map[string]any)
				return nil, nil
			})

		l := New(reg)
		va, err := l.Resolve(context.Background(), "a")
		require.NoError(t, err)

		// b ran while a was mid-resolution, so it saw a's exports object
		// before a's factory populated it; the instance is still the same.
		assert.Equal(t, va, seenByB, "b received a's exports object")
		assert.Equal(t, "a", va.(map[string]any)["from"])
		assert.Equal(t, "b", seenByA["from"], "a received b's finished exports object")

		vb, err := l.Resolve(context.Background(), "b")
		require.NoError(t, err)
		assert.Equal(t, "b", vb.(map[string]any)["from"])
	})
}

func TestResolve_DiamondDependency(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	dCalls := 0
	var dSeenByB, dSeenByC any

	reg.Define("d", nil, func(ctx context.Context, args []any) (any, error) {
		dCalls++
		return map[string]any{"who": "d"}, nil
	})
	reg.Define("b", []registry.Dep{registry.ModuleDep("d")},
		func(ctx context.Context, args []any) (any, error) {
			dSeenByB = args[0]
			return "b", nil
		})
	reg.Define("c", []registry.Dep{registry.ModuleDep("d")},
		func(ctx context.Context, args []any) (any, error) {
			dSeenByC = args[0]
			return "c", nil
		})
	reg.Define("a", []registry.Dep{registry.ModuleDep("b"), registry.ModuleDep("c")}, value("a", nil))

	l := New(reg)
	_, err := l.Resolve(context.Background(), "a")
	require.NoError(t, err)

	assert.Equal(t, 1, dCalls, "shared dependency instantiated once")
	require.NotNil(t, dSeenByB)
	assert.Equal(t, dSeenByB, dSeenByC)
	dSeenByB.(map[string]any)["probe"] = true
	assert.Contains(t, dSeenByC.(map[string]any), "probe", "b and c share the identical instance")
}

func TestResolve_SharedAncestorIsNotACycle(t *testing.T) {
	t.Parallel()

	// a -> b -> d and a -> c -> d: d appears in two branches of the walk but
	// never twice on one path.
	reg := registry.New()
	reg.Define("d", nil, value("d", nil))
	reg.Define("b", []registry.Dep{registry.ModuleDep("d")}, value("b", nil))
	reg.Define("c", []registry.Dep{registry.ModuleDep("d")}, value("c", nil))
	reg.Define("a", []registry.Dep{registry.ModuleDep("b"), registry.ModuleDep("c")}, value("a", nil))

	l := New(reg)
	v, err := l.Resolve(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "a", v)
}

func TestResolve_Redefinition(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	firstCalls, secondCalls := 0, 0
	reg.Define("a", nil, value("first", &firstCalls))
	reg.Define("a", nil, value("second", &secondCalls))

	l := New(reg)
	v, err := l.Resolve(context.Background(), "a")
	require.NoError(t, err)

	assert.Equal(t, "second", v, "last definition wins")
	assert.Equal(t, 0, firstCalls)
	assert.Equal(t, 1, secondCalls)
}

func TestResolve_FactoryFailureIsNotCached(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	calls := 0
	reg.Define("flaky", nil, func(ctx context.Context, args []any) (any, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("boom")
		}
		return "ok", nil
	})

	l := New(reg)
	_, err := l.Resolve(context.Background(), "flaky")
	require.Error(t, err)
	assert.ErrorContains(t, err, "boom")
	assert.False(t, l.Resolved("flaky"), "failed module must not be cached")

	v, err := l.Resolve(context.Background(), "flaky")
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, calls, "second resolve re-attempts from scratch")
}

func TestResolve_ProvisionalExportsDiscardedOnFailure(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	reg.Define("broken", []registry.Dep{registry.ExportsDep(), registry.ModuleDep("missing")},
		value("never", nil))

	l := New(reg)
	_, err := l.Resolve(context.Background(), "broken")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.False(t, l.Resolved("broken"), "provisional exports entry must be rolled back")
}

func TestResolve_ExportsFallback(t *testing.T) {
	t.Parallel()

	t.Run("nil factory result falls back to exports object", func(t *testing.T) {
		reg := registry.New()
		reg.Define("lib", []registry.Dep{registry.ExportsDep()},
			func(ctx context.Context, args []any) (any, error) {
				args[0].(map[string]any)["greet"] = "hello"
				return nil, nil
			})

		l := New(reg)
		v, err := l.Resolve(context.Background(), "lib")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"greet": "hello"}, v)
	})

	t.Run("explicit return value wins over exports object", func(t *testing.T) {
		reg := registry.New()
		reg.Define("lib", []registry.Dep{registry.ExportsDep()},
			func(ctx context.Context, args []any) (any, error) {
				args[0].(map[string]any)["ignored"] = true
				return "explicit", nil
			})

		l := New(reg)
		v, err := l.Resolve(context.Background(), "lib")
		require.NoError(t, err)
		assert.Equal(t, "explicit", v)
	})

	t.Run("nil result without exports dep exports nil, once", func(t *testing.T) {
		reg := registry.New()
		calls := 0
		reg.Define("sink", nil, value(nil, &calls))

		l := New(reg)
		v, err := l.Resolve(context.Background(), "sink")
		require.NoError(t, err)
		assert.Nil(t, v)
		assert.True(t, l.Resolved("sink"))

		_, err = l.Resolve(context.Background(), "sink")
		require.NoError(t, err)
		assert.Equal(t, 1, calls, "nil export still memoizes")
	})
}

func TestResolvedCount(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	reg.Define("d", nil, value("d", nil))
	reg.Define("a", []registry.Dep{registry.ModuleDep("d")}, value("a", nil))

	l := New(reg)
	assert.Equal(t, 0, l.ResolvedCount())

	_, err := l.Resolve(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 2, l.ResolvedCount(), "transitive deps count as resolved")
}
