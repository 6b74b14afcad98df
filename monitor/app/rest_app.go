package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/hightemp/process-manager/config"
	"github.com/hightemp/process-manager/monitor/rest"
	"github.com/hightemp/process-manager/monitor/updater"
	"github.com/hightemp/process-manager/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const defaultHost = "127.0.0.1:7420"

func NewRestApp(configName string, configDirPath string) (*fx.App, error) {
	handlerModule, err := HandlerModule(configName, configDirPath)
	if err != nil {
		return nil, err
	}

	app := fx.New(
		handlerModule,
		fx.Invoke(StartRestApp),
		fx.Invoke(StartUpdater),
	)
	return app, nil
}

func StartRestApp(lc fx.Lifecycle, cfg config.ServerConfig, handler *rest.Handler) error {
	engine := echo.New()
	engine.HideBanner = true
	handler.SetupRoutes(engine)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			serverHost := cfg.Host
			if serverHost == "" {
				serverHost = defaultHost
			}
			go func() {
				logger.Logger(ctx).Info().Msgf("starting rest server on %s", serverHost)
				if err := engine.Start(serverHost); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Logger(ctx).Fatal().Err(err).Msgf("start rest server fail on %s", serverHost)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Logger(ctx).Info().Msg("shutting down rest server")
			return engine.Shutdown(ctx)
		},
	})
	return nil
}

// StartUpdater runs the refresh loop for the lifetime of the application.
func StartUpdater(lc fx.Lifecycle, u *updater.Updater) error {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			u.Start(ctx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return u.Stop(ctx)
		},
	})
	return nil
}
