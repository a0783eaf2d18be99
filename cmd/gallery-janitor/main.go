// Command gallery-janitor enforces the shared gallery expiry policy.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/orbitshare/orbit-api/internal/config"
	"github.com/orbitshare/orbit-api/internal/domain/gallery"
	"github.com/orbitshare/orbit-api/internal/pkg/database"
	"github.com/orbitshare/orbit-api/internal/pkg/events"
	"github.com/orbitshare/orbit-api/internal/pkg/logger"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env, LogFile: cfg.LogFile}); err != nil {
		log.Fatal().Err(err).Msg("Failed to init logger")
	}

	log.Info().
		Dur("expiry", cfg.GalleryExpiry).
		Dur("interval", cfg.JanitorInterval).
		Msg("Starting gallery-janitor")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis is only a wake-up source; the ticker still runs without it
	rdb, err := database.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, polling only")
		rdb = nil
	}
	defer database.CloseRedis(rdb)
	wake := events.NewBus(rdb).Wakeups(ctx, events.GalleryPublished)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigChan
		log.Info().Msg("Shutdown signal received")
		cancel()
	}()

	registry := gallery.NewFileRegistry(filepath.Join(cfg.DataDir, "shared_galleries.json"), cfg.MaxSharedGalleries)
	newJanitor(registry, cfg.GalleryExpiry).run(ctx, cfg.JanitorInterval, wake)
}
