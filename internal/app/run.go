package app

import (
	"context"
	"fmt"

	"github.com/vk/powerupgo/internal/bridge"
	"github.com/vk/powerupgo/internal/ctxlog"
	"github.com/vk/powerupgo/internal/static"
)

// Run executes the main application logic based on the provided configuration.
// With a listen address it serves the extension's static assets; with a host
// URL it additionally holds a live session with the host runtime. With
// neither it stops after startup validation, which suits CI.
func (a *App) Run(ctx context.Context, appConfig *AppConfig) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	name := "powerup"
	origin := ""
	assetsDir := "public"
	if pu := a.config.PowerUp; pu != nil {
		name = pu.Name
		origin = pu.HostOrigin
		if pu.AssetsDir != "" {
			assetsDir = pu.AssetsDir
		}
	}

	if appConfig.ListenAddr != "" {
		srv := static.NewServer(appConfig.ListenAddr, assetsDir, origin)
		srv.Start(ctx)
		defer func() {
			if err := srv.Close(context.WithoutCancel(ctx)); err != nil {
				a.logger.Error("Asset server close failed", "error", err)
			}
		}()
	}

	if appConfig.HostURL == "" {
		if appConfig.ListenAddr == "" {
			a.logger.Info("✅ Configuration and registry validated, nothing to serve.")
			return nil
		}
		a.logger.Info("No host URL configured, serving assets only.")
		<-ctx.Done()
		return nil
	}

	a.logger.Info("🔌 Connecting to host runtime...", "url", appConfig.HostURL)
	b := bridge.New(a.registry, bridge.Config{
		Name: name,
		URL:  appConfig.HostURL,
	})
	if err := b.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("host session ended: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
