package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"polo-scraper/config"
	"polo-scraper/utils"
)

// Start binds the app to the configured address for the lifetime of the fx
// application. A listener failure shuts the application down.
func Start(lc fx.Lifecycle, sd fx.Shutdowner, cfg *config.Config, app *fiber.App, logger *utils.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("[server] Listening on http://%s", cfg.Addr())
				if err := app.Listen(cfg.Addr()); err != nil {
					logger.Error("[server] Listener stopped: %v", err)
					_ = sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("[server] Shutting down")
			return app.ShutdownWithContext(ctx)
		},
	})
}
