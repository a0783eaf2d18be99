package gallery

import (
	"context"
	"strings"
	"time"

	"github.com/orbitshare/orbit-api/internal/domain/files"
	"github.com/orbitshare/orbit-api/internal/pkg/events"
	"github.com/orbitshare/orbit-api/internal/pkg/logger"
	"github.com/orbitshare/orbit-api/internal/pkg/metrics"
)

// Config holds gallery service settings
type Config struct {
	DefaultTitle  string
	PublicBaseURL string
}

// Service publishes and serves shared galleries
type Service struct {
	registry Registry
	events   events.Publisher
	config   Config
	now      func() time.Time
}

// NewService creates gallery service
func NewService(registry Registry, publisher events.Publisher, cfg Config) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if cfg.DefaultTitle == "" {
		cfg.DefaultTitle = "Shared Gallery"
	}
	return &Service{registry: registry, events: publisher, config: cfg, now: time.Now}
}

// Publish stores a snapshot of records under id, generating the id when
// empty. An empty but non-nil set publishes an empty gallery.
func (s *Service) Publish(ctx context.Context, id string, records []files.FileRecord, title string) (*Snapshot, error) {
	if records == nil {
		return nil, ErrNoFiles
	}
	if id == "" {
		id = GenerateID(records, s.now())
	}
	if strings.TrimSpace(title) == "" {
		title = s.config.DefaultTitle
	}

	snap, err := s.registry.Publish(ctx, id, records, title)
	if err != nil {
		return nil, err
	}

	if err := s.events.Publish(ctx, events.GalleryPublished, snap.ID); err != nil {
		logger.LogWarn(ctx, "Failed to announce gallery", "gallery_id", snap.ID, "error", err.Error())
	}
	logger.LogInfo(ctx, "Gallery published", "gallery_id", snap.ID, "file_count", snap.FileCount)
	return snap, nil
}

// Get returns a snapshot
func (s *Service) Get(ctx context.Context, id string) (*Snapshot, error) {
	return s.registry.GetByID(ctx, id)
}

// View increments the view counter of an existing snapshot
func (s *Service) View(ctx context.Context, id string) (*Snapshot, error) {
	snap, err := s.registry.IncrementViews(ctx, id)
	if err != nil {
		return nil, err
	}
	metrics.GalleryViewsTotal.Inc()
	if err := s.events.Publish(ctx, events.GalleryViewed, id); err != nil {
		logger.LogDebug(ctx, "Failed to announce gallery view", "gallery_id", id, "error", err.Error())
	}
	return snap, nil
}

// List returns all snapshot ids
func (s *Service) List(ctx context.Context) ([]string, error) {
	return s.registry.List(ctx)
}

// ShareURL builds the public link for a snapshot
func (s *Service) ShareURL(id string) string {
	base := strings.TrimSuffix(s.config.PublicBaseURL, "/")
	return base + "/gallery.html?id=" + id
}
