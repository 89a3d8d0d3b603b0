package cmd

import (
	"context"
	"fmt"

	"github.com/heram/storefront/cart/pkg/store"
	"github.com/heram/storefront/internal/api"
	"github.com/heram/storefront/internal/cache"
	"github.com/heram/storefront/internal/config"
	"github.com/heram/storefront/internal/constants"
	"github.com/heram/storefront/internal/log"
	"github.com/heram/storefront/internal/notify"
	"github.com/heram/storefront/internal/otel"
	"github.com/heram/storefront/internal/poll"
	"github.com/heram/storefront/internal/token"
)

// runShop boots the storefront client: the cart store, its redis mirror
// and the polling supervisor. The online and visible flags start active;
// a frontend embedding this process flips them from its own lifecycle
// callbacks.
func runShop(c context.Context) {
	logger := log.InitLogger(fmt.Sprintf("/var/log/%s.log", constants.APP_STOREFRONT)).
		With().
		Str(log.KEY_APP_NAME, constants.APP_STOREFRONT).
		Str(log.KEY_TAG, "main runShop").
		Logger()
	c = logger.WithContext(c)

	logger.Info().Str(log.KEY_PROCESS, "init config").Msg("initializing config")
	cfg := config.InitConfig(c, constants.APP_STOREFRONT)
	logger = logger.With().Any(log.KEY_CONFIG, cfg).Logger()
	c = logger.WithContext(c)
	logger.Info().Str(log.KEY_PROCESS, "init config").Msg("initialized config")

	logger.Info().Str(log.KEY_PROCESS, "InitOtelSdk").Msg("initializing otel sdk")
	otelShutdowns, err := otel.InitOtelSdk(c, constants.APP_STOREFRONT, cfg.Otel)
	if err != nil {
		logger.Error().
			Err(err).
			Str(log.KEY_PROCESS, "InitOtelSdk").
			Msgf("failed initializing otel sdk with error=%s", err.Error())
	}
	logger.Info().Str(log.KEY_PROCESS, "InitOtelSdk").Msg("initialized otel sdk")

	logger.Info().Str(log.KEY_PROCESS, "init cache").Msg("initializing cache")
	var mirror cache.Mirror
	if cfg.Cache.Host == "" {
		logger.Info().
			Str(log.KEY_PROCESS, "init cache").
			Msg("cache host is empty, falling back to in-memory mirror")
		mirror = cache.NewMemoryMirror()
	} else {
		mirror = cache.NewRedisMirror(cache.NewCacheClient(c, cfg.Cache))
	}
	logger.Info().Str(log.KEY_PROCESS, "init cache").Msg("initialized cache")

	logger.Info().Str(log.KEY_PROCESS, "init store").Msg("initializing cart store")
	tokens := token.NewStaticSource(cfg.Api.Token)
	apiClient := api.NewClient(cfg.Api.BaseUrl, tokens)
	notifier := notify.LogNotifier{}
	cartStore := store.NewStore(apiClient, tokens, mirror, notifier, cfg.Poll.UndoWindow)
	logger.Info().Str(log.KEY_PROCESS, "init store").Msg("initialized cart store")

	logger.Info().
		Str(log.KEY_PROCESS, "start supervisor").
		Dur(log.KEY_POLL_INTERVAL, cfg.Poll.Interval).
		Msg("starting poll supervisor")
	online := poll.NewFlag(true)
	visible := poll.NewFlag(true)
	supervisor := poll.NewSupervisor(
		cfg.Poll.Interval,
		cartStore.Fetch,
		online,
		visible,
	)
	cartStore.Fetch(c)
	supervisor.Start(c)
	logger.Info().Str(log.KEY_PROCESS, "start supervisor").Msg("started poll supervisor")

	<-c.Done()
	logger.Info().
		Str(log.KEY_PROCESS, "shutdown").
		Msg("received interruption signal shutting down")

	supervisor.Stop()
	logger.Info().Str(log.KEY_PROCESS, "shutdown").Msg("stopped poll supervisor")

	if err := otel.ShutdownOtel(c, otelShutdowns); err != nil {
		logger.Error().
			Err(err).
			Str(log.KEY_PROCESS, "shutdown").
			Msgf("failed shutting down otel with error=%s", err.Error())
	}
	logger.Info().Str(log.KEY_PROCESS, "shutdown").Msg("shutdown otel")
}
