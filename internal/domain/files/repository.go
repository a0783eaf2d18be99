package files

import (
	"context"
	"sort"

	"github.com/orbitshare/orbit-api/internal/pkg/apperr"
	"github.com/orbitshare/orbit-api/internal/pkg/jsondoc"
	"github.com/orbitshare/orbit-api/internal/pkg/metrics"
)

// Registry is the metadata store for uploaded files.
//
// Every mutating call is a full read-modify-write of one shared document
// with no cross-call locking. Two concurrent mutations race and the later
// writer's document wins, silently discarding the other change.
type Registry interface {
	// List returns all records, newest upload first, ties in append order.
	List(ctx context.Context) ([]FileRecord, error)
	GetByID(ctx context.Context, id string) (*FileRecord, error)
	// Append succeeds only once the document holding the record is durable.
	Append(ctx context.Context, record FileRecord) error
	// DeleteByID removes the record and returns it.
	DeleteByID(ctx context.Context, id string) (*FileRecord, error)
	// Reset replaces the document with an empty list.
	Reset(ctx context.Context) error
}

// Document persists the whole record list
type Document interface {
	// Load returns the records in append order; a missing document is empty.
	Load(ctx context.Context) ([]FileRecord, error)
	Save(ctx context.Context, records []FileRecord) error
}

// FileDocument stores the record list as a JSON array at Path
type FileDocument struct {
	Path string
}

func (d FileDocument) Load(_ context.Context) ([]FileRecord, error) {
	var records []FileRecord
	if _, err := jsondoc.Read(d.Path, &records); err != nil {
		return nil, apperr.Wrap(err, apperr.KindStorage, ErrStoreRead.Code, ErrStoreRead.Message)
	}
	return records, nil
}

func (d FileDocument) Save(_ context.Context, records []FileRecord) error {
	if records == nil {
		records = []FileRecord{}
	}
	err := jsondoc.Write(d.Path, records)
	metrics.ObserveWrite("files", err)
	if err != nil {
		return apperr.Wrap(err, apperr.KindStorage, ErrStoreWrite.Code, ErrStoreWrite.Message)
	}
	return nil
}

// DocumentRegistry implements Registry on top of a Document
type DocumentRegistry struct {
	doc Document
}

var _ Registry = (*DocumentRegistry)(nil)

// NewRegistry creates a registry over doc
func NewRegistry(doc Document) *DocumentRegistry {
	return &DocumentRegistry{doc: doc}
}

// NewFileRegistry creates a registry persisted as JSON at path
func NewFileRegistry(path string) *DocumentRegistry {
	return NewRegistry(FileDocument{Path: path})
}

func (r *DocumentRegistry) List(ctx context.Context) ([]FileRecord, error) {
	records, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	sorted := make([]FileRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UploadedAt.After(sorted[j].UploadedAt.Time)
	})
	return sorted, nil
}

func (r *DocumentRegistry) GetByID(ctx context.Context, id string) (*FileRecord, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	records, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			rec := records[i]
			return &rec, nil
		}
	}
	return nil, ErrFileNotFound
}

func (r *DocumentRegistry) Append(ctx context.Context, record FileRecord) error {
	if record.ID == "" {
		return ErrMissingID
	}
	records, err := r.doc.Load(ctx)
	if err != nil {
		return err
	}
	for _, existing := range records {
		if existing.ID == record.ID {
			return ErrDuplicateID
		}
	}
	return r.doc.Save(ctx, append(records, record))
}

func (r *DocumentRegistry) DeleteByID(ctx context.Context, id string) (*FileRecord, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	records, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range records {
		if records[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrFileNotFound
	}
	removed := records[idx]
	remaining := make([]FileRecord, 0, len(records)-1)
	remaining = append(remaining, records[:idx]...)
	remaining = append(remaining, records[idx+1:]...)
	if err := r.doc.Save(ctx, remaining); err != nil {
		return nil, err
	}
	return &removed, nil
}

func (r *DocumentRegistry) Reset(ctx context.Context) error {
	return r.doc.Save(ctx, []FileRecord{})
}
