package gallery

import (
	"context"
	"sort"
	"time"

	"github.com/orbitshare/orbit-api/internal/domain/files"
	"github.com/orbitshare/orbit-api/internal/pkg/apperr"
	"github.com/orbitshare/orbit-api/internal/pkg/jsondoc"
	"github.com/orbitshare/orbit-api/internal/pkg/metrics"
)

// Registry stores shared gallery snapshots keyed by id.
//
// Like the file registry, every mutation rewrites the whole document with
// no locking, so concurrent mutations resolve as last writer wins.
type Registry interface {
	// Publish creates or fully replaces the snapshot for id. Replacing
	// resets views to 0. Afterwards, if more than the cap remain, all
	// snapshots are re-sorted by publish timestamp and only the newest kept.
	Publish(ctx context.Context, id string, records []files.FileRecord, title string) (*Snapshot, error)
	GetByID(ctx context.Context, id string) (*Snapshot, error)
	IncrementViews(ctx context.Context, id string) (*Snapshot, error)
	// List returns every snapshot key, sorted.
	List(ctx context.Context) ([]string, error)
	// PruneOlderThan removes snapshots published before cutoff. It backs the
	// external expiry job; the registry never expires entries on its own.
	PruneOlderThan(ctx context.Context, cutoff time.Time) ([]string, error)
}

// Document persists the id-keyed snapshot map
type Document interface {
	Load(ctx context.Context) (map[string]Snapshot, error)
	Save(ctx context.Context, snapshots map[string]Snapshot) error
}

// FileDocument stores the map as a JSON object at Path
type FileDocument struct {
	Path string
}

func (d FileDocument) Load(_ context.Context) (map[string]Snapshot, error) {
	snapshots := map[string]Snapshot{}
	if _, err := jsondoc.Read(d.Path, &snapshots); err != nil {
		return nil, apperr.Wrap(err, apperr.KindStorage, ErrStoreRead.Code, ErrStoreRead.Message)
	}
	if snapshots == nil {
		snapshots = map[string]Snapshot{}
	}
	return snapshots, nil
}

func (d FileDocument) Save(_ context.Context, snapshots map[string]Snapshot) error {
	err := jsondoc.Write(d.Path, snapshots)
	metrics.ObserveWrite("galleries", err)
	if err != nil {
		return apperr.Wrap(err, apperr.KindStorage, ErrStoreWrite.Code, ErrStoreWrite.Message)
	}
	return nil
}

// DocumentRegistry implements Registry on top of a Document
type DocumentRegistry struct {
	doc          Document
	maxSnapshots int
	now          func() time.Time
}

var _ Registry = (*DocumentRegistry)(nil)

// Option configures a DocumentRegistry
type Option func(*DocumentRegistry)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(r *DocumentRegistry) { r.now = now }
}

// NewRegistry creates a registry retaining at most maxSnapshots entries
func NewRegistry(doc Document, maxSnapshots int, opts ...Option) *DocumentRegistry {
	if maxSnapshots <= 0 {
		maxSnapshots = DefaultMaxSnapshots
	}
	r := &DocumentRegistry{doc: doc, maxSnapshots: maxSnapshots, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewFileRegistry creates a registry persisted as JSON at path
func NewFileRegistry(path string, maxSnapshots int, opts ...Option) *DocumentRegistry {
	return NewRegistry(FileDocument{Path: path}, maxSnapshots, opts...)
}

func (r *DocumentRegistry) Publish(ctx context.Context, id string, records []files.FileRecord, title string) (*Snapshot, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	snapshots, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}

	now := r.now().UTC()
	copied := make([]files.FileRecord, len(records))
	copy(copied, records)

	snap := Snapshot{
		ID:        id,
		Title:     title,
		Files:     copied,
		Timestamp: now.Unix(),
		FileCount: len(copied),
		Views:     0,
	}
	snapshots[id] = snap

	if evicted := evict(snapshots, r.maxSnapshots); evicted > 0 {
		metrics.GalleryEvictionsTotal.Add(float64(evicted))
	}

	if err := r.doc.Save(ctx, snapshots); err != nil {
		return nil, err
	}
	return &snap, nil
}

// evict re-sorts every snapshot by publish timestamp, newest first, and
// drops everything past max. Equal timestamps fall back to id order.
func evict(snapshots map[string]Snapshot, max int) int {
	if len(snapshots) <= max {
		return 0
	}
	all := make([]Snapshot, 0, len(snapshots))
	for _, s := range snapshots {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Timestamp != all[j].Timestamp {
			return all[i].Timestamp > all[j].Timestamp
		}
		return all[i].ID < all[j].ID
	})
	for _, s := range all[max:] {
		delete(snapshots, s.ID)
	}
	return len(all) - max
}

func (r *DocumentRegistry) GetByID(ctx context.Context, id string) (*Snapshot, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	snapshots, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	snap, ok := snapshots[id]
	if !ok {
		return nil, ErrGalleryNotFound
	}
	return &snap, nil
}

func (r *DocumentRegistry) IncrementViews(ctx context.Context, id string) (*Snapshot, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	snapshots, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	snap, ok := snapshots[id]
	if !ok {
		return nil, ErrGalleryNotFound
	}
	snap.Views++
	snapshots[id] = snap
	if err := r.doc.Save(ctx, snapshots); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *DocumentRegistry) List(ctx context.Context) ([]string, error) {
	snapshots, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(snapshots))
	for id := range snapshots {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *DocumentRegistry) PruneOlderThan(ctx context.Context, cutoff time.Time) ([]string, error) {
	snapshots, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	var removed []string
	for id, s := range snapshots {
		if s.PublishedAt().Before(cutoff) {
			removed = append(removed, id)
			delete(snapshots, id)
		}
	}
	if len(removed) == 0 {
		return nil, nil
	}
	sort.Strings(removed)
	if err := r.doc.Save(ctx, snapshots); err != nil {
		return nil, err
	}
	return removed, nil
}
