package gallery

import "github.com/orbitshare/orbit-api/internal/domain/files"

// PublishRequest is the body of POST /galleries. A missing galleryId is
// generated from the file set. files must be present but may be empty.
type PublishRequest struct {
	GalleryID string             `json:"galleryId" validate:"omitempty,gallery_id"`
	Files     []files.FileRecord `json:"files" validate:"required"`
	Title     string             `json:"title" validate:"max=200"`
}

// UpdateRequest is the body of PUT /galleries/{id}
type UpdateRequest struct {
	IncrementViews bool `json:"incrementViews"`
}

// PublishResponse is returned after publishing
type PublishResponse struct {
	GalleryID string   `json:"galleryId"`
	ShareURL  string   `json:"shareUrl"`
	Gallery   Snapshot `json:"gallery"`
}

// GalleryResponse wraps one snapshot
type GalleryResponse struct {
	Gallery Snapshot `json:"gallery"`
}

// ViewsResponse is returned after a view increment
type ViewsResponse struct {
	GalleryID string `json:"galleryId"`
	Views     int64  `json:"views"`
}

// ListResponse is the body of GET /galleries
type ListResponse struct {
	Galleries []string `json:"galleries"`
	Count     int      `json:"count"`
}
