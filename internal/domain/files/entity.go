package files

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the on-disk format of upload_date
const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp is a second-precision UTC time serialized as TimestampLayout
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to whole seconds in UTC
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Second)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(TimestampLayout))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("upload_date: %w", err)
	}
	parsed, err := time.ParseInLocation(TimestampLayout, s, time.UTC)
	if err != nil {
		if parsed, err = time.Parse(time.RFC3339, s); err != nil {
			return fmt.Errorf("upload_date: %w", err)
		}
	}
	*t = NewTimestamp(parsed)
	return nil
}

// Dimensions of a successfully probed image
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// FileRecord describes one uploaded file. Records are never mutated after
// creation; they are only appended and deleted.
type FileRecord struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	StoredFilename string      `json:"filename"`
	Path           string      `json:"path"`
	ThumbnailPath  *string     `json:"thumbnail"`
	SizeBytes      int64       `json:"size"`
	MimeType       string      `json:"type"`
	UploadedAt     Timestamp   `json:"upload_date"`
	Dimensions     *Dimensions `json:"dimensions"`
}

// DisplayPath is what a listing shows for the record: the thumbnail when
// one was derived, otherwise the original.
func (r FileRecord) DisplayPath() string {
	if r.ThumbnailPath != nil && *r.ThumbnailPath != "" {
		return *r.ThumbnailPath
	}
	return r.Path
}

// HasThumbnail reports whether a distinct thumbnail exists
func (r FileRecord) HasThumbnail() bool {
	return r.ThumbnailPath != nil && *r.ThumbnailPath != "" && *r.ThumbnailPath != r.Path
}
