// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/orphanagecare/internal/app/system/indexes"
	"github.com/dalemusser/orphanagecare/internal/app/system/validators"
	"go.uber.org/zap"
)

const schemaTimeout = 30 * time.Second

// EnsureSchema creates the collections with their required-field
// validators and the unique indexes every store relies on. Startup fails if
// an index cannot be built, for example because existing documents already
// violate it.
func EnsureSchema(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, schemaTimeout)
	defer cancel()

	if err := validators.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("validator setup failed", zap.Error(err))
		return err
	}
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("index reconciliation failed", zap.Error(err))
		return err
	}
	return nil
}
