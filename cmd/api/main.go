package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carrental/internal/cache"
	"carrental/internal/config"
	"carrental/internal/database"
	"carrental/internal/events"
	"carrental/internal/logger"
	"carrental/internal/modules/notification"
	"carrental/internal/outbox"
	"carrental/internal/pkg/jwt"
	"carrental/internal/repository"
	"carrental/internal/router"

	"github.com/gin-gonic/gin"
)

func main() {
	log := logger.New("dev", "info")
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log = logger.New(cfg.AppEnv, cfg.LogLevel)
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}
	store := repository.NewStore(db)

	var statsCache cache.Cache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		client, err := cache.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, stats cache disabled")
		} else {
			defer client.Close()
			statsCache = cache.NewRedis(client, cfg.Redis.StatsTTL)
		}
	}

	if cfg.Outbox.RabbitMQURL != "" {
		publisher := outbox.NewAMQPPublisher(cfg.Outbox.RabbitMQURL, cfg.Outbox.Queue)
		defer publisher.Close()
		dispatcher := outbox.NewDispatcher(store.Outbox, publisher, cfg.Outbox.MaxRetry, cfg.Outbox.BatchSize, log)
		go outbox.NewScheduler(dispatcher, cfg.Outbox.Interval, log).Run(ctx)
		log.Info().Str("queue", cfg.Outbox.Queue).Msg("outbox dispatcher started")
	} else {
		log.Info().Msg("RABBITMQ_URL not set, outbox messages stay queued")
	}

	hub := notification.NewHub()
	defer hub.Close()

	handler := router.New(router.Deps{
		Config: cfg,
		Store:  store,
		Tokens: jwt.New(cfg.JWT.Secret, cfg.JWT.TTL),
		Cache:  statsCache,
		Bus:    events.NewBus(),
		Hub:    hub,
		Log:    log,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
}
