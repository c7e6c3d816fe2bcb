// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. MakerHub
// uses it to warm the live collection mirror so the first request already
// sees a full snapshot.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	subs, err := deps.Mirror.SubscribeAll(ctx)
	if err != nil {
		return err
	}
	logger.Info("collection mirror warmed", zap.Int("collections", len(subs)))
	return nil
}
