package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/orbitshare/orbit-api/internal/config"
	"github.com/orbitshare/orbit-api/internal/domain/admin"
	"github.com/orbitshare/orbit-api/internal/domain/files"
	"github.com/orbitshare/orbit-api/internal/domain/gallery"
	"github.com/orbitshare/orbit-api/internal/domain/scene"
	"github.com/orbitshare/orbit-api/internal/domain/upload"
	"github.com/orbitshare/orbit-api/internal/galaxy"
	"github.com/orbitshare/orbit-api/internal/pkg/database"
	"github.com/orbitshare/orbit-api/internal/pkg/events"
	"github.com/orbitshare/orbit-api/internal/pkg/imaging"
	"github.com/orbitshare/orbit-api/internal/pkg/jwt"
	"github.com/orbitshare/orbit-api/internal/pkg/logger"
	"github.com/orbitshare/orbit-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env, LogFile: cfg.LogFile}); err != nil {
		log.Fatal().Err(err).Msg("Failed to init logger")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("storage", cfg.StorageDriver).
		Msg("Starting Orbit API")

	ctx := context.Background()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("Failed to create data directory")
	}

	store, err := storage.Open(ctx, storage.Options{
		Driver:   cfg.StorageDriver,
		LocalDir: cfg.UploadDir,
		LocalURL: "uploads",
		S3: storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}

	redisClient, err := database.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, events disabled")
		redisClient = nil
	}
	defer database.CloseRedis(redisClient)
	bus := events.NewBus(redisClient)
	hooks := events.NewHooks(bus)

	galaxyCfg, err := galaxy.LoadConfig(cfg.GalaxyConfigPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.GalaxyConfigPath).Msg("Invalid galaxy config")
	}

	// ---------- Registries ----------
	fileRegistry := files.NewFileRegistry(filepath.Join(cfg.DataDir, "files.json"))
	galleryRegistry := gallery.NewFileRegistry(filepath.Join(cfg.DataDir, "shared_galleries.json"), cfg.MaxSharedGalleries)

	// ---------- Services ----------
	fileService := files.NewService(fileRegistry, store, hooks)
	galleryService := gallery.NewService(galleryRegistry, bus, gallery.Config{
		DefaultTitle:  cfg.DefaultGalleryTitle,
		PublicBaseURL: cfg.PublicBaseURL,
	})
	uploadService := upload.NewService(fileRegistry, store,
		imaging.NewProcessor(imaging.Config{Bound: cfg.ThumbnailSize, Quality: cfg.ThumbnailQuality}),
		bus, upload.Config{MaxBytes: cfg.MaxUploadBytes, AllowedTypes: cfg.AllowedMimeTypes})
	assets := scene.NewAssetResolver(store, cfg.AssetCacheSize, cfg.AssetCacheTTL)
	assets.InvalidateOn(hooks)
	sceneService := scene.NewService(fileService, galleryService, assets, galaxyCfg)

	// ---------- Handlers ----------
	h := handlers{
		Files:          files.NewHandler(fileService),
		Gallery:        gallery.NewHandler(galleryService),
		Upload:         upload.NewHandler(uploadService),
		Scene:          scene.NewHandler(sceneService),
		AllowedOrigins: cfg.AllowedOrigins,
	}
	if cfg.StorageDriver == "" || cfg.StorageDriver == storage.DriverLocal {
		h.UploadDir = cfg.UploadDir
	}
	if cfg.AdminEnabled() {
		adminService := admin.NewService(fileRegistry, galleryRegistry, store, hooks)
		h.Admin = admin.NewHandler(adminService, jwt.NewService(cfg.AdminJWTSecret, time.Hour))
	} else {
		log.Warn().Msg("ADMIN_JWT_SECRET not set, admin endpoints disabled")
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
