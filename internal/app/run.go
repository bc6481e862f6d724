package app

import (
	"context"
	"fmt"

	"github.com/vk/modgridgo/internal/ctxlog"
	"github.com/vk/modgridgo/internal/graph"
	"github.com/vk/modgridgo/internal/loader"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if appConfig.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx, appConfig.HealthcheckPort)
		defer a.closeHealthcheckServer(ctx)
	}

	if appConfig.Check {
		a.logger.Debug("Running eager module graph check.")
		if err := graph.Check(ctx, a.registry); err != nil {
			return err
		}
		a.logger.Info("✅ Module graph check passed.", "modules", len(a.registry.Declarations()))
		return nil
	}

	entrypoints := a.model.Entrypoints
	if appConfig.Entry != "" {
		entrypoints = []string{appConfig.Entry}
	}
	if len(entrypoints) == 0 {
		return fmt.Errorf("no entrypoint: declare an entrypoint block or pass -entry")
	}

	// One loader for all entrypoints, so they share resolved instances.
	l := loader.New(a.registry)

	a.logger.Info("🚀 Starting module resolution.", "entrypoints", entrypoints)
	for _, entry := range entrypoints {
		value, err := l.Resolve(ctx, entry)
		if err != nil {
			return fmt.Errorf("failed to resolve entrypoint '%s': %w", entry, err)
		}
		a.logger.Info("Entrypoint resolved.", "name", entry, "value_type", fmt.Sprintf("%T", value))
	}
	a.logger.Info("🏁 Resolution finished.", "modules_instantiated", l.ResolvedCount())

	a.logger.Debug("App.Run method finished.")
	return nil
}
