package files

import (
	"context"
	"path"

	"github.com/orbitshare/orbit-api/internal/pkg/apperr"
	"github.com/orbitshare/orbit-api/internal/pkg/errorhandler"
	"github.com/orbitshare/orbit-api/internal/pkg/events"
	"github.com/orbitshare/orbit-api/internal/pkg/logger"
	"github.com/orbitshare/orbit-api/internal/pkg/metrics"
)

// ThumbnailPrefix is the storage key prefix of derived thumbnails
const ThumbnailPrefix = "thumbnails/"

// ObjectDeleter is the part of storage the delete path needs
type ObjectDeleter interface {
	Delete(ctx context.Context, key string) error
}

// DeleteResult reports what happened to the physical files of a deleted record
type DeleteResult struct {
	Record  FileRecord `json:"file"`
	Removed []string   `json:"removed"`
	Failed  []string   `json:"failed,omitempty"`
}

// Partial reports whether metadata went away but some files stayed behind
func (r DeleteResult) Partial() bool {
	return len(r.Failed) > 0
}

// Service wraps the registry with physical-file cleanup
type Service struct {
	registry Registry
	storage  ObjectDeleter
	events   events.Publisher
}

// NewService creates files service. publisher may be nil.
func NewService(registry Registry, storage ObjectDeleter, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{registry: registry, storage: storage, events: publisher}
}

// List returns all records newest first
func (s *Service) List(ctx context.Context) ([]FileRecord, error) {
	return s.registry.List(ctx)
}

// Get returns one record
func (s *Service) Get(ctx context.Context, id string) (*FileRecord, error) {
	return s.registry.GetByID(ctx, id)
}

// Delete removes the record first, then makes a best-effort attempt on the
// primary file and thumbnail. File removal failures never undo the
// metadata removal; they are logged as a partial failure.
func (s *Service) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	rec, err := s.registry.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &DeleteResult{Record: *rec}
	for _, key := range StorageKeys(*rec) {
		if err := s.storage.Delete(ctx, key); err != nil {
			result.Failed = append(result.Failed, key)
			errorhandler.LogOutcome(ctx,
				apperr.Wrap(err, apperr.KindPartialFailure, "FILE_DELETE_PARTIAL", "record removed but file deletion failed"),
				"Physical file left behind after delete")
			continue
		}
		result.Removed = append(result.Removed, key)
	}

	if result.Partial() {
		metrics.PartialFailuresTotal.WithLabelValues("file_delete").Inc()
	}
	if err := s.events.Publish(ctx, events.FileDeleted, rec.ID); err != nil {
		logger.LogWarn(ctx, "Failed to announce delete", "file_id", rec.ID, "error", err.Error())
	}
	logger.LogInfo(ctx, "File deleted", "file_id", rec.ID, "removed", len(result.Removed), "failed", len(result.Failed))
	return result, nil
}

// StorageKeys returns the storage keys backing a record
func StorageKeys(rec FileRecord) []string {
	var keys []string
	if rec.StoredFilename != "" {
		keys = append(keys, rec.StoredFilename)
	}
	if rec.HasThumbnail() {
		keys = append(keys, ThumbnailPrefix+path.Base(*rec.ThumbnailPath))
	}
	return keys
}
