package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/heram/storefront/internal/config"
	"github.com/heram/storefront/internal/constants"
	"github.com/heram/storefront/internal/devserver"
	"github.com/heram/storefront/internal/log"
	"github.com/heram/storefront/internal/otel"
)

func runDevServer(c context.Context) {
	logger := log.InitLogger(fmt.Sprintf("/var/log/%s.log", constants.APP_DEV_SERVER)).
		With().
		Str(log.KEY_APP_NAME, constants.APP_DEV_SERVER).
		Str(log.KEY_TAG, "main runDevServer").
		Logger()
	c = logger.WithContext(c)

	logger.Info().Str(log.KEY_PROCESS, "init config").Msg("initializing config")
	cfg := config.InitConfig(c, constants.APP_STOREFRONT)
	logger = logger.With().Any(log.KEY_CONFIG, cfg).Logger()
	c = logger.WithContext(c)
	logger.Info().Str(log.KEY_PROCESS, "init config").Msg("initialized config")

	logger.Info().Str(log.KEY_PROCESS, "InitOtelSdk").Msg("initializing otel sdk")
	otelShutdowns, err := otel.InitOtelSdk(c, constants.APP_DEV_SERVER, cfg.Otel)
	if err != nil {
		logger.Error().
			Err(err).
			Str(log.KEY_PROCESS, "InitOtelSdk").
			Msgf("failed initializing otel sdk with error=%s", err.Error())
	}
	logger.Info().Str(log.KEY_PROCESS, "InitOtelSdk").Msg("initialized otel sdk")

	logger.Info().Str(log.KEY_PROCESS, "start server").Msg("initializing router")
	state := devserver.NewState(cfg.Application.SecretKey)
	router := devserver.NewRouter(state)
	logger.Info().Str(log.KEY_PROCESS, "start server").Msg("initialized router")

	logger.Info().Str(log.KEY_PROCESS, "start server").Msg("initializing server")
	server := http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Application.Host, cfg.Application.Port),
		BaseContext:  func(net.Listener) context.Context { return c },
		Handler:      router,
		ReadTimeout:  45 * time.Second,
		WriteTimeout: 45 * time.Second,
	}
	logger.Info().Str(log.KEY_PROCESS, "start server").Msg("initialized server")

	go func() {
		logger.Info().
			Str(log.KEY_PROCESS, "start server").
			Msgf("start listening request at %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().
				Err(err).
				Str(log.KEY_PROCESS, "shutdown server").
				Msgf("error=%s occured while server is running", err.Error())
			if err := otel.ShutdownOtel(c, otelShutdowns); err != nil {
				logger.Error().
					Err(err).
					Str(log.KEY_PROCESS, "shutdown server").
					Msgf("failed shutting down otel with error=%s", err.Error())
			}
		}
		logger.Info().
			Str(log.KEY_PROCESS, "shutdown server").
			Msg("shutdown server")
	}()

	<-c.Done()
	logger.Info().
		Str(log.KEY_PROCESS, "shutdown server").
		Msg("received interruption signal shutting down")

	logger.Info().Str(log.KEY_PROCESS, "shutdown server").Msg("shutting down otel")
	if err := otel.ShutdownOtel(c, otelShutdowns); err != nil {
		logger.Error().
			Err(err).
			Str(log.KEY_PROCESS, "shutdown server").
			Msgf("failed shutting down otel with error=%s", err.Error())
	}
	logger.Info().Str(log.KEY_PROCESS, "shutdown server").Msg("shutdown otel")

	logger.Info().Str(log.KEY_PROCESS, "shutdown server").Msg("shutting down http server")
	if err := server.Shutdown(c); err != nil {
		logger.Error().
			Err(err).
			Str(log.KEY_PROCESS, "shutdown server").
			Msgf("failed shutting down http server with error=%s", err.Error())
	}
	logger.Info().Str(log.KEY_PROCESS, "shutdown server").Msg("shutdown http server")
}
