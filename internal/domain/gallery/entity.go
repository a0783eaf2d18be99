package gallery

import (
	"time"

	"github.com/orbitshare/orbit-api/internal/domain/files"
)

// DefaultMaxSnapshots is the retention cap when none is configured
const DefaultMaxSnapshots = 100

// Snapshot is a published, read-only copy of a file set. Files are copied,
// not referenced, so deleting a source record never changes a snapshot.
type Snapshot struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Files     []files.FileRecord `json:"files"`
	Timestamp int64              `json:"timestamp"`
	FileCount int                `json:"fileCount"`
	Views     int64              `json:"views"`
}

// PublishedAt is the publish instant recorded in Timestamp
func (s Snapshot) PublishedAt() time.Time {
	return time.Unix(s.Timestamp, 0).UTC()
}
