package scene

import "github.com/orbitshare/orbit-api/internal/galaxy/render"

// SceneResponse is one rendered frame plus what it was built from
type SceneResponse struct {
	GalleryID string       `json:"galleryId,omitempty"`
	Title     string       `json:"title,omitempty"`
	Views     int64        `json:"views,omitempty"`
	Seed      int64        `json:"seed"`
	Objects   int          `json:"objects"`
	Frame     render.Frame `json:"frame"`
}
