package admin

import "time"

// ResetResult reports what a reset removed. Storage keys that could not be
// deleted are listed in Failed; the registry is cleared regardless.
type ResetResult struct {
	RecordsCleared int      `json:"recordsCleared"`
	Removed        []string `json:"removed"`
	Failed         []string `json:"failed,omitempty"`
}

// Partial reports whether any stored object survived the reset
func (r ResetResult) Partial() bool {
	return len(r.Failed) > 0
}

// Stats is a point-in-time view of the registries
type Stats struct {
	Files       int       `json:"files"`
	StoredBytes int64     `json:"storedBytes"`
	Galleries   int       `json:"galleries"`
	Objects     int       `json:"objects"`
	Thumbnails  int       `json:"thumbnails"`
	CollectedAt time.Time `json:"collectedAt"`
}
