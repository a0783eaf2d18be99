package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/orbitshare/orbit-api/internal/domain/files"
	"github.com/orbitshare/orbit-api/internal/pkg/apperr"
	"github.com/orbitshare/orbit-api/internal/pkg/errorhandler"
	"github.com/orbitshare/orbit-api/internal/pkg/events"
	"github.com/orbitshare/orbit-api/internal/pkg/imaging"
	"github.com/orbitshare/orbit-api/internal/pkg/logger"
	"github.com/orbitshare/orbit-api/internal/pkg/metrics"
	"github.com/orbitshare/orbit-api/internal/pkg/storage"
)

// ObjectStore is the part of storage the pipeline writes to
type ObjectStore interface {
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	GetURL(key string) string
}

// DefaultMaxBytes is the upload size cap when none is configured
const DefaultMaxBytes int64 = 10 * 1024 * 1024

// Config holds pipeline limits
type Config struct {
	MaxBytes     int64
	AllowedTypes []string
}

// Service runs the upload pipeline
type Service struct {
	registry  files.Registry
	store     ObjectStore
	processor *imaging.Processor
	events    events.Publisher
	maxBytes  int64
	allowed   map[string]bool
	now       func() time.Time
	newID     func() string
}

// NewService creates upload service
func NewService(registry files.Registry, store ObjectStore, processor *imaging.Processor, publisher events.Publisher, cfg Config) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	allowed := make(map[string]bool, len(cfg.AllowedTypes))
	for _, t := range cfg.AllowedTypes {
		allowed[storage.NormalizeMime(t)] = true
	}
	return &Service{
		registry:  registry,
		store:     store,
		processor: processor,
		events:    publisher,
		maxBytes:  cfg.MaxBytes,
		allowed:   allowed,
		now:       time.Now,
		newID:     newUniqueID,
	}
}

func newUniqueID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return strings.ReplaceAll(id.String(), "-", "")
}

// Upload validates, stores, thumbnails and registers one file.
// The client file name is kept for display only and never reaches a storage key.
func (s *Service) Upload(ctx context.Context, in Input, body io.Reader) (*Result, error) {
	result := &Result{Trace: []State{StateReceived}}

	data, mimeType, probed, err := s.validate(in, body)
	if err != nil {
		result.Trace = append(result.Trace, StateRejected)
		metrics.UploadsTotal.WithLabelValues(outcome(err)).Inc()
		logger.LogDebug(ctx, "Upload rejected", "name", in.OriginalName, "declared_type", in.DeclaredType, "reason", err.Error())
		return nil, err
	}
	result.Trace = append(result.Trace, StateValidated)

	now := s.now().UTC()
	id := s.newID()
	storedName := id + "_" + strconv.FormatInt(now.Unix(), 10) + storage.GetExtensionForMime(mimeType)

	if err := s.store.Put(ctx, storedName, bytes.NewReader(data), mimeType); err != nil {
		metrics.UploadsTotal.WithLabelValues("failed_storage").Inc()
		return nil, apperr.Wrap(err, apperr.KindStorage, ErrStorageMove.Code, ErrStorageMove.Message)
	}
	result.Trace = append(result.Trace, StateStored)

	record := files.FileRecord{
		ID:             id,
		Name:           in.OriginalName,
		StoredFilename: storedName,
		Path:           s.store.GetURL(storedName),
		SizeBytes:      int64(len(data)),
		MimeType:       mimeType,
		UploadedAt:     files.NewTimestamp(now),
		Dimensions:     &files.Dimensions{Width: probed.Width, Height: probed.Height},
	}

	thumbKey, err := s.deriveThumbnail(ctx, storedName, probed)
	if err != nil {
		result.ThumbnailErr = err
		result.Trace = append(result.Trace, StateThumbnailSkipped)
		metrics.FallbacksTotal.WithLabelValues("thumbnail").Inc()
		errorhandler.LogOutcome(ctx, err, "Thumbnail skipped, original will be displayed")
	} else {
		thumbURL := s.store.GetURL(thumbKey)
		record.ThumbnailPath = &thumbURL
		result.Trace = append(result.Trace, StateThumbnailDerived)
	}

	if err := s.registry.Append(ctx, record); err != nil {
		// The file is stored but unregistered; clean up what we can.
		for _, key := range files.StorageKeys(record) {
			if derr := s.store.Delete(ctx, key); derr != nil {
				logger.LogWarn(ctx, "Orphaned upload left in storage", "key", key, "error", derr.Error())
			}
		}
		metrics.UploadsTotal.WithLabelValues("failed_registry").Inc()
		return nil, apperr.Wrap(err, apperr.KindStorage, ErrRegistryWrite.Code, ErrRegistryWrite.Message)
	}
	result.Trace = append(result.Trace, StateRegistered)
	result.Record = record

	metrics.UploadsTotal.WithLabelValues("stored").Inc()
	metrics.UploadBytes.Observe(float64(record.SizeBytes))
	if err := s.events.Publish(ctx, events.FileUploaded, record.ID); err != nil {
		logger.LogWarn(ctx, "Failed to announce upload", "file_id", record.ID, "error", err.Error())
	}
	logger.LogInfo(ctx, "File uploaded",
		"file_id", record.ID,
		"stored_name", storedName,
		"size", record.SizeBytes,
		"thumbnail", record.HasThumbnail(),
		"degraded", result.Degraded(),
	)
	return result, nil
}

// validate checks the declared type, the size, the sniffed type and finally
// decodes the content. Order matters: a disallowed declared type is rejected
// before any bytes are read.
func (s *Service) validate(in Input, body io.Reader) ([]byte, string, *imaging.Probed, error) {
	declared := storage.NormalizeMime(in.DeclaredType)
	if declared != "" && declared != "application/octet-stream" && !s.allowed[declared] {
		return nil, "", nil, ErrInvalidType
	}
	if in.Size > s.maxBytes {
		return nil, "", nil, ErrTooLarge
	}

	data, err := storage.ReadLimited(body, s.maxBytes)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			return nil, "", nil, ErrTooLarge
		case errors.Is(err, storage.ErrEmptyFile):
			return nil, "", nil, ErrEmptyFile
		default:
			return nil, "", nil, apperr.Wrap(err, apperr.KindValidation, ErrCorruptContent.Code, ErrCorruptContent.Message)
		}
	}

	sniffed := storage.NormalizeMime(storage.DetectMime(data))
	if !s.allowed[sniffed] {
		// Images with a broken header still sniff as their family
		if strings.HasPrefix(declared, "image/") && !strings.HasPrefix(sniffed, "image/") && sniffed != "text/plain" {
			return nil, "", nil, ErrCorruptContent
		}
		return nil, "", nil, ErrInvalidType
	}
	if declared != "" && declared != "application/octet-stream" && family(declared) != family(sniffed) {
		return nil, "", nil, ErrInvalidType
	}

	probed, err := s.processor.Probe(data)
	if err != nil {
		return nil, "", nil, apperr.Wrap(err, apperr.KindValidation, ErrCorruptContent.Code, ErrCorruptContent.Message)
	}
	return data, sniffed, probed, nil
}

func (s *Service) deriveThumbnail(ctx context.Context, storedName string, probed *imaging.Probed) (string, error) {
	thumb, err := s.processor.Thumbnail(probed)
	if err != nil {
		return "", apperr.Wrap(err, apperr.KindDegradedFallback, ErrThumbnail.Code, ErrThumbnail.Message)
	}
	key := files.ThumbnailPrefix + imaging.ThumbnailName(storedName, thumb.Ext)
	if err := s.store.Put(ctx, key, bytes.NewReader(thumb.Data), thumb.ContentType); err != nil {
		return "", apperr.Wrap(err, apperr.KindDegradedFallback, ErrThumbnail.Code, ErrThumbnail.Message)
	}
	return key, nil
}

func family(mimeType string) string {
	if i := strings.Index(mimeType, "/"); i > 0 {
		return mimeType[:i]
	}
	return mimeType
}

func outcome(err error) string {
	var e *apperr.Error
	if !errors.As(err, &e) {
		return "rejected"
	}
	return strings.ToLower(e.Code)
}

// SanitizeFileName strips path components from a client-supplied name
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	name = path.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." || name == "/" {
		return "file"
	}
	return name
}
