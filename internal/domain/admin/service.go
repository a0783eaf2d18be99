package admin

import (
	"context"
	"strings"
	"time"

	"github.com/orbitshare/orbit-api/internal/domain/files"
	"github.com/orbitshare/orbit-api/internal/pkg/apperr"
	"github.com/orbitshare/orbit-api/internal/pkg/errorhandler"
	"github.com/orbitshare/orbit-api/internal/pkg/events"
	"github.com/orbitshare/orbit-api/internal/pkg/logger"
	"github.com/orbitshare/orbit-api/internal/pkg/metrics"
)

// ObjectStore is the storage surface maintenance needs
type ObjectStore interface {
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, key string) error
}

// GalleryStore is the gallery registry surface maintenance needs
type GalleryStore interface {
	List(ctx context.Context) ([]string, error)
	PruneOlderThan(ctx context.Context, cutoff time.Time) ([]string, error)
}

// Service runs destructive maintenance operations
type Service struct {
	files     files.Registry
	galleries GalleryStore
	store     ObjectStore
	events    events.Publisher
	now       func() time.Time
}

// NewService creates admin service
func NewService(fr files.Registry, gs GalleryStore, store ObjectStore, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{files: fr, galleries: gs, store: store, events: publisher, now: time.Now}
}

// Reset empties the metadata registry and deletes every stored upload and
// thumbnail. Shared galleries are snapshots and are left alone.
func (s *Service) Reset(ctx context.Context, actor string) (*ResetResult, error) {
	records, err := s.files.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.files.Reset(ctx); err != nil {
		return nil, err
	}

	result := &ResetResult{RecordsCleared: len(records)}
	keys, err := s.store.List(ctx, "")
	if err != nil {
		errorhandler.LogOutcome(ctx,
			apperr.Wrap(err, apperr.KindPartialFailure, "RESET_LIST_FAILED", "registry cleared but storage listing failed"),
			"Stored files left behind after reset")
		metrics.PartialFailuresTotal.WithLabelValues("reset").Inc()
		_ = s.events.Publish(ctx, events.FilesReset, actor)
		return result, nil
	}

	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			result.Failed = append(result.Failed, key)
			continue
		}
		result.Removed = append(result.Removed, key)
	}
	if result.Partial() {
		metrics.PartialFailuresTotal.WithLabelValues("reset").Inc()
		errorhandler.LogOutcome(ctx,
			apperr.New(apperr.KindPartialFailure, "RESET_PARTIAL", "registry cleared but some files remain"),
			"Stored files left behind after reset")
	}

	_ = s.events.Publish(ctx, events.FilesReset, actor)
	logger.LogInfo(ctx, "Files reset",
		"actor", actor, "records", result.RecordsCleared,
		"removed", len(result.Removed), "failed", len(result.Failed))
	return result, nil
}

// Stats counts records, galleries and stored objects
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	records, err := s.files.List(ctx)
	if err != nil {
		return nil, err
	}
	ids, err := s.galleries.List(ctx)
	if err != nil {
		return nil, err
	}
	keys, err := s.store.List(ctx, "")
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindStorage, "STORAGE_LIST_FAILED", "Could not list stored files")
	}

	st := &Stats{Files: len(records), Galleries: len(ids), Objects: len(keys), CollectedAt: s.now().UTC()}
	for _, rec := range records {
		st.StoredBytes += rec.SizeBytes
	}
	for _, key := range keys {
		if strings.HasPrefix(key, files.ThumbnailPrefix) {
			st.Thumbnails++
		}
	}
	return st, nil
}

// PruneGalleries removes snapshots created before now minus maxAge
func (s *Service) PruneGalleries(ctx context.Context, actor string, maxAge time.Duration) ([]string, error) {
	if maxAge <= 0 {
		return nil, ErrInvalidMaxAge
	}
	removed, err := s.galleries.PruneOlderThan(ctx, s.now().Add(-maxAge))
	if err != nil {
		return nil, err
	}
	logger.LogInfo(ctx, "Galleries pruned", "actor", actor, "removed", len(removed), "max_age", maxAge.String())
	return removed, nil
}
