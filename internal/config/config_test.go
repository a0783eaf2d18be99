package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MAX_SHARED_GALLERIES", "")
	t.Setenv("THUMBNAIL_SIZE", "not-a-number")

	cfg := Load()

	if cfg.MaxSharedGalleries != 100 {
		t.Errorf("expected default gallery cap 100, got %d", cfg.MaxSharedGalleries)
	}
	if cfg.ThumbnailSize != 300 {
		t.Errorf("expected thumbnail size fallback 300, got %d", cfg.ThumbnailSize)
	}
	if cfg.MaxUploadBytes != 10*1024*1024 {
		t.Errorf("expected 10 MiB upload limit, got %d", cfg.MaxUploadBytes)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ALLOWED_MIME_TYPES", "image/png, image/gif ,")
	t.Setenv("GALLERY_EXPIRY", "48h")
	t.Setenv("ADMIN_JWT_SECRET", "s3cret")

	cfg := Load()

	if len(cfg.AllowedMimeTypes) != 2 || cfg.AllowedMimeTypes[1] != "image/gif" {
		t.Errorf("unexpected mime list: %#v", cfg.AllowedMimeTypes)
	}
	if cfg.GalleryExpiry != 48*time.Hour {
		t.Errorf("expected 48h expiry, got %s", cfg.GalleryExpiry)
	}
	if !cfg.AdminEnabled() {
		t.Error("expected admin endpoints to be enabled")
	}
}

func TestParseStringSlice(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"a,b", 2},
		{",a,,b,", 2},
	}
	for _, tt := range tests {
		if got := parseStringSlice(tt.in); len(got) != tt.want {
			t.Errorf("parseStringSlice(%q) = %v, want %d items", tt.in, got, tt.want)
		}
	}
}
