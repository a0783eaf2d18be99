package gallery

import "github.com/orbitshare/orbit-api/internal/pkg/apperr"

var (
	ErrGalleryNotFound = apperr.NotFound("GALLERY_NOT_FOUND", "Gallery not found")
	ErrMissingID       = apperr.Validation("MISSING_GALLERY_ID", "Gallery id is required")
	ErrNoFiles         = apperr.Validation("FILES_REQUIRED", "files is required")

	ErrStoreWrite = apperr.New(apperr.KindStorage, "GALLERY_STORE_WRITE_FAILED", "Failed to persist gallery registry")
	ErrStoreRead  = apperr.New(apperr.KindStorage, "GALLERY_STORE_READ_FAILED", "Failed to read gallery registry")
)
