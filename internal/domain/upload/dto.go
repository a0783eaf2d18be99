package upload

import "github.com/orbitshare/orbit-api/internal/domain/files"

// UploadResponse is the body of POST /upload
type UploadResponse struct {
	Message string           `json:"message"`
	File    files.FileRecord `json:"file"`
}
