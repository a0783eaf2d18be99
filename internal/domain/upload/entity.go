package upload

import "github.com/orbitshare/orbit-api/internal/domain/files"

// State is a step of the per-request upload pipeline
type State string

const (
	StateReceived         State = "received"
	StateValidated        State = "validated"
	StateStored           State = "stored"
	StateThumbnailDerived State = "thumbnail_derived"
	StateThumbnailSkipped State = "thumbnail_skipped"
	StateRegistered       State = "registered"
	StateRejected         State = "rejected"
)

// Input is one received file
type Input struct {
	OriginalName string
	DeclaredType string
	Size         int64 // declared by the client, -1 when unknown
}

// Result is a successfully registered upload
type Result struct {
	Record files.FileRecord
	// Trace lists every state the request passed through, in order
	Trace []State
	// ThumbnailErr is set when thumbnail derivation was skipped after a failure
	ThumbnailErr error
}

// Degraded reports whether the upload fell back to the original for display
func (r *Result) Degraded() bool {
	return r.ThumbnailErr != nil
}
