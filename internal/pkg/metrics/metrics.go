// Package metrics holds the business counters updated from the service layer.
// HTTP request metrics live in the middleware package.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UploadsTotal counts upload attempts by outcome (stored, rejected_*, failed_*).
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbit_uploads_total",
			Help: "Upload attempts by outcome",
		},
		[]string{"result"},
	)

	// UploadBytes observes accepted upload sizes.
	UploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orbit_upload_bytes",
			Help:    "Size of accepted uploads in bytes",
			Buckets: prometheus.ExponentialBuckets(16*1024, 4, 7),
		},
	)

	// FallbacksTotal counts degraded fallbacks (thumbnail, asset placeholder).
	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbit_fallbacks_total",
			Help: "Degraded fallbacks taken instead of failing",
		},
		[]string{"kind"},
	)

	// PartialFailuresTotal counts operations that succeeded with a side failure.
	PartialFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbit_partial_failures_total",
			Help: "Operations reported as success with a logged side failure",
		},
		[]string{"operation"},
	)

	// DocumentWritesTotal counts full-document rewrites by document and result.
	DocumentWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbit_document_writes_total",
			Help: "Registry document rewrites",
		},
		[]string{"document", "result"},
	)

	// GalleryEvictionsTotal counts snapshots dropped by the retention cap.
	GalleryEvictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orbit_gallery_evictions_total",
			Help: "Shared gallery snapshots evicted by the retention cap",
		},
	)

	// GalleryViewsTotal counts view increments.
	GalleryViewsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orbit_gallery_views_total",
			Help: "Shared gallery view increments",
		},
	)

	// AssetCacheHits counts asset existence lookups answered from cache.
	AssetCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orbit_asset_cache_hits_total",
			Help: "Asset existence checks served from the LRU cache",
		},
	)

	// AssetCacheMisses counts asset existence lookups that reached storage.
	AssetCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orbit_asset_cache_misses_total",
			Help: "Asset existence checks that reached storage",
		},
	)
)

// ObserveWrite records the result of a document write.
func ObserveWrite(document string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	DocumentWritesTotal.WithLabelValues(document, result).Inc()
}
