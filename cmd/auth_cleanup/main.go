package main

import (
	"context"
	"time"

	"carrental/internal/config"
	"carrental/internal/database"
	"carrental/internal/logger"
	"carrental/internal/repository"
)

const (
	revokedRetention = 30 * 24 * time.Hour
	outboxRetention  = 7 * 24 * time.Hour
)

func main() {
	log := logger.New("dev", "info")
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log = logger.New(cfg.AppEnv, cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	store := repository.NewStore(db)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	now := time.Now().UTC()

	tokens, err := store.RefreshTokens.DeleteStale(ctx, now, now.Add(-revokedRetention))
	if err != nil {
		log.Fatal().Err(err).Msg("cleanup refresh_tokens failed")
	}

	messages, err := store.Outbox.PurgeProcessed(ctx, now.Add(-outboxRetention))
	if err != nil {
		log.Fatal().Err(err).Msg("cleanup outbox_messages failed")
	}

	log.Info().
		Int64("refresh_tokens", tokens).
		Int64("outbox_messages", messages).
		Msg("auth cleanup completed")
}
