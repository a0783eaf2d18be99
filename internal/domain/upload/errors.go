package upload

import (
	"github.com/orbitshare/orbit-api/internal/pkg/apperr"
	"github.com/orbitshare/orbit-api/internal/pkg/errorhandler"
)

var (
	ErrInvalidType    = apperr.Validation("REJECTED_INVALID_TYPE", "File type is not allowed")
	ErrTooLarge       = apperr.Validation(errorhandler.CodeTooLarge, "File exceeds maximum size")
	ErrEmptyFile      = apperr.Validation("REJECTED_EMPTY_FILE", "File is empty")
	ErrCorruptContent = apperr.Validation("REJECTED_CORRUPT_CONTENT", "File content is not a valid image")
	ErrNoFile         = apperr.Validation("NO_FILE", "No file uploaded")

	ErrStorageMove   = apperr.New(apperr.KindStorage, "STORAGE_MOVE_FAILED", "Failed to store uploaded file")
	ErrRegistryWrite = apperr.New(apperr.KindStorage, "REGISTRY_WRITE_FAILED", "Failed to register uploaded file")

	// ErrThumbnail never fails a request; it is reported as a degraded fallback
	ErrThumbnail = apperr.New(apperr.KindDegradedFallback, "THUMBNAIL_FAILED", "Thumbnail could not be derived, original is used")
)
