package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/orbitshare/orbit-api/internal/config"
	"github.com/orbitshare/orbit-api/internal/domain/files"
	"github.com/orbitshare/orbit-api/internal/domain/gallery"
	"github.com/orbitshare/orbit-api/internal/pkg/logger"
	"github.com/orbitshare/orbit-api/internal/pkg/storage"
)

var (
	appConfig *config.Config

	fileRegistry    *files.DocumentRegistry
	galleryRegistry *gallery.DocumentRegistry
	objectStore     storage.Storage

	dataDirFlag   string
	uploadDirFlag string
)

// rootCmd is orbitctl without a subcommand
var rootCmd = &cobra.Command{
	Use:           "orbitctl",
	Short:         "Inspect and maintain Orbit registries",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Registry directory (defaults to DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&uploadDirFlag, "upload-dir", "", "Local upload directory (defaults to UPLOAD_DIR)")

	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(galleryCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(simulateCmd)
}

// openRegistries wires the documents and storage the data commands share
func openRegistries(cmd *cobra.Command, _ []string) error {
	appConfig = config.Load()
	if dataDirFlag != "" {
		appConfig.DataDir = dataDirFlag
	}
	if uploadDirFlag != "" {
		appConfig.UploadDir = uploadDirFlag
	}
	_ = logger.Init(logger.Config{Level: "warn", Environment: "production"})

	if err := os.MkdirAll(appConfig.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	fileRegistry = files.NewFileRegistry(filepath.Join(appConfig.DataDir, "files.json"))
	galleryRegistry = gallery.NewFileRegistry(filepath.Join(appConfig.DataDir, "shared_galleries.json"), appConfig.MaxSharedGalleries)

	st, err := storage.Open(getContext(), storage.Options{
		Driver:   appConfig.StorageDriver,
		LocalDir: appConfig.UploadDir,
		LocalURL: "uploads",
		S3: storage.S3Config{
			Endpoint:  appConfig.S3Endpoint,
			Region:    appConfig.S3Region,
			Bucket:    appConfig.S3Bucket,
			AccessKey: appConfig.S3AccessKey,
			SecretKey: appConfig.S3SecretKey,
			PublicURL: appConfig.S3PublicURL,
		},
	})
	if err != nil {
		return err
	}
	objectStore = st
	return nil
}

func getContext() context.Context {
	return context.Background()
}
