package scene

import (
	"context"
	"path"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/orbitshare/orbit-api/internal/domain/files"
	"github.com/orbitshare/orbit-api/internal/galaxy"
	"github.com/orbitshare/orbit-api/internal/pkg/apperr"
	"github.com/orbitshare/orbit-api/internal/pkg/errorhandler"
	"github.com/orbitshare/orbit-api/internal/pkg/events"
	"github.com/orbitshare/orbit-api/internal/pkg/metrics"
)

// ObjectChecker is the part of storage the resolver needs
type ObjectChecker interface {
	Exists(ctx context.Context, key string) (bool, error)
}

// AssetResolver checks which images of a record still exist, so the
// client receives a fallback chain that starts with something loadable.
// Results are cached per storage key for a short TTL.
type AssetResolver struct {
	store ObjectChecker
	cache *expirable.LRU[string, bool]
}

// NewAssetResolver creates a resolver caching up to size lookups for ttl
func NewAssetResolver(store ObjectChecker, size int, ttl time.Duration) *AssetResolver {
	if size <= 0 {
		size = 1024
	}
	return &AssetResolver{
		store: store,
		cache: expirable.NewLRU[string, bool](size, nil, ttl),
	}
}

// Invalidate forgets every cached lookup
func (r *AssetResolver) Invalidate() {
	r.cache.Purge()
}

// InvalidateOn purges the cache whenever files are deleted or reset
func (r *AssetResolver) InvalidateOn(hooks *events.Hooks) {
	hooks.On(func(context.Context, string) { r.Invalidate() }, events.FileDeleted, events.FilesReset)
}

func (r *AssetResolver) exists(ctx context.Context, key string) bool {
	if ok, hit := r.cache.Get(key); hit {
		metrics.AssetCacheHits.Inc()
		return ok
	}
	metrics.AssetCacheMisses.Inc()

	ok, err := r.store.Exists(ctx, key)
	if err != nil {
		// Unknown is treated as present; the client still falls back on load failure.
		errorhandler.LogOutcome(ctx,
			apperr.Wrap(err, apperr.KindDegradedFallback, "ASSET_CHECK_FAILED", "asset existence check failed"),
			"Asset check failed")
		return true
	}
	r.cache.Add(key, ok)
	return ok
}

// Source converts a record into a galaxy source with a pruned fallback chain
func (r *AssetResolver) Source(ctx context.Context, rec files.FileRecord) galaxy.Source {
	src := galaxy.Source{ID: rec.ID, Title: rec.Name}
	if rec.HasThumbnail() && r.exists(ctx, files.ThumbnailPrefix+path.Base(*rec.ThumbnailPath)) {
		src.Thumbnail = *rec.ThumbnailPath
	}
	if rec.StoredFilename == "" || r.exists(ctx, rec.StoredFilename) {
		src.Original = rec.Path
	}

	switch {
	case src.Original == "" && src.Thumbnail == "":
		metrics.FallbacksTotal.WithLabelValues("asset_placeholder").Inc()
	case src.Thumbnail == "" && rec.HasThumbnail():
		metrics.FallbacksTotal.WithLabelValues("asset_original").Inc()
	}
	return src
}

// Sources converts records in order
func (r *AssetResolver) Sources(ctx context.Context, records []files.FileRecord) []galaxy.Source {
	out := make([]galaxy.Source, 0, len(records))
	for _, rec := range records {
		out = append(out, r.Source(ctx, rec))
	}
	return out
}
