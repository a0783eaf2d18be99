package files

import "github.com/orbitshare/orbit-api/internal/pkg/apperr"

var (
	ErrFileNotFound = apperr.NotFound("FILE_NOT_FOUND", "File not found")
	ErrDuplicateID  = apperr.Validation("DUPLICATE_FILE_ID", "A file with this id already exists")
	ErrMissingID    = apperr.Validation("MISSING_FILE_ID", "File id is required")

	// ErrStoreWrite marks a registry document that could not be persisted
	ErrStoreWrite = apperr.New(apperr.KindStorage, "STORE_WRITE_FAILED", "Failed to persist file registry")
	// ErrStoreRead marks a registry document that could not be read or decoded
	ErrStoreRead = apperr.New(apperr.KindStorage, "STORE_READ_FAILED", "Failed to read file registry")
)
