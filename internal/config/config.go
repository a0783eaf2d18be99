package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port          string
	Env           string
	PublicBaseURL string

	// Logging
	LogLevel string
	LogFile  string

	// CORS
	AllowedOrigins []string

	// Registry documents
	DataDir string

	// Uploads
	StorageDriver    string
	UploadDir        string
	MaxUploadBytes   int64
	AllowedMimeTypes []string
	ThumbnailSize    int
	ThumbnailQuality int

	// Object storage (STORAGE_DRIVER=s3)
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	// Shared galleries
	MaxSharedGalleries  int
	DefaultGalleryTitle string
	GalleryExpiry       time.Duration
	JanitorInterval     time.Duration

	// Redis (optional, event fan-out)
	RedisURL string

	// Admin endpoints are disabled when the secret is empty
	AdminJWTSecret string

	// Visualization
	GalaxyConfigPath string
	AssetCacheSize   int
	AssetCacheTTL    time.Duration
}

func Load() *Config {
	// Load .env file in development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		// Server
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
		LogFile:  getEnv("LOG_FILE", ""),

		// CORS
		AllowedOrigins: parseStringSlice(getEnv("ALLOWED_ORIGINS", "*")),

		// Registry documents
		DataDir: getEnv("DATA_DIR", "data"),

		// Uploads
		StorageDriver:    getEnv("STORAGE_DRIVER", "local"),
		UploadDir:        getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes:   parseInt64(getEnv("MAX_UPLOAD_BYTES", "10485760"), 10*1024*1024),
		AllowedMimeTypes: parseStringSlice(getEnv("ALLOWED_MIME_TYPES", "image/jpeg,image/jpg,image/png,image/gif,image/webp")),
		ThumbnailSize:    parseInt(getEnv("THUMBNAIL_SIZE", "300"), 300),
		ThumbnailQuality: parseInt(getEnv("THUMBNAIL_QUALITY", "85"), 85),

		// Object storage
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Bucket:    getEnv("S3_BUCKET", "orbit-uploads"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3PublicURL: getEnv("S3_PUBLIC_URL", ""),

		// Shared galleries
		MaxSharedGalleries:  parseInt(getEnv("MAX_SHARED_GALLERIES", "100"), 100),
		DefaultGalleryTitle: getEnv("DEFAULT_GALLERY_TITLE", "💖 Our Galaxy of Love 💖"),
		GalleryExpiry:       parseDuration(getEnv("GALLERY_EXPIRY", "8760h"), 365*24*time.Hour),
		JanitorInterval:     parseDuration(getEnv("JANITOR_INTERVAL", "1h"), time.Hour),

		// Redis
		RedisURL: getEnv("REDIS_URL", ""),

		// Admin
		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),

		// Visualization
		GalaxyConfigPath: getEnv("GALAXY_CONFIG", "galaxy.yaml"),
		AssetCacheSize:   parseInt(getEnv("ASSET_CACHE_SIZE", "1024"), 1024),
		AssetCacheTTL:    parseDuration(getEnv("ASSET_CACHE_TTL", "5m"), 5*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultValue
	}
	return d
}

func parseInt(s string, defaultValue int) int {
	value, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseInt64(s string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseStringSlice(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AdminEnabled reports whether admin endpoints should be mounted
func (c *Config) AdminEnabled() bool {
	return c.AdminJWTSecret != ""
}
