// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/orphanagecare/internal/app/system/respond"
	"github.com/dalemusser/waffle/server"
	"go.uber.org/zap"
)

// Run executes the service lifecycle: LoadConfig, ValidateConfig,
// ConnectDB, EnsureSchema, Startup, BuildHandler, serve until ctx is
// cancelled or SIGINT/SIGTERM arrives, then Shutdown.
func Run(ctx context.Context, args []string) error {
	appCfg, err := LoadConfig(args)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := NewLogger(appCfg.Env, appCfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	undo := zap.ReplaceGlobals(logger)
	defer undo()
	respond.SetLogger(logger)

	if err := ValidateConfig(appCfg, logger); err != nil {
		return err
	}

	ctx, cancel := server.WithShutdownSignals(ctx, logger)
	defer cancel()

	deps, err := ConnectDB(ctx, appCfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), appCfg.ShutdownTimeout)
		defer cancel()
		_ = Shutdown(sctx, appCfg, deps, logger)
	}()

	if err := EnsureSchema(ctx, appCfg, deps, logger); err != nil {
		return err
	}
	if err := Startup(ctx, appCfg, deps, logger); err != nil {
		return err
	}
	handler, err := BuildHandler(appCfg, deps, logger)
	if err != nil {
		return err
	}

	logger.Info("server is running", zap.Int("port", appCfg.HTTPPort), zap.String("env", appCfg.Env))
	return server.ListenAndServeWithContext(ctx, appCfg.CoreConfig(), handler, logger)
}
