// Package metrics defines and registers all custom Prometheus metrics for the
// movie catalog API. It is the single source of truth for metric names,
// labels, and help strings.
//
// All metrics register with the default Prometheus registry at package init
// via promauto; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "moviecatalog"

// ── Movie metrics ─────────────────────────────────────────────────────────────

// MoviesCreatedTotal counts movies created through the API.
var MoviesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "movies_created_total",
		Help:      "Total number of movies created.",
	},
)

// MoviesDeletedTotal counts soft deletions.
var MoviesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "movies_deleted_total",
		Help:      "Total number of movies soft-deleted.",
	},
)

// ListDuration measures how long a filtered movie listing takes end-to-end,
// including the store round trip and poster URL resolution.
var ListDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "list_duration_seconds",
		Help:      "Duration of movie list queries.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Poster metrics ────────────────────────────────────────────────────────────

// PosterUploadsTotal counts poster uploads.
// Label:
//   - result: "ok" or "error"
var PosterUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "poster_uploads_total",
		Help:      "Total number of poster upload attempts, by result.",
	},
	[]string{"result"},
)

// PosterPresignCacheTotal counts signed-URL cache decisions.
// Label:
//   - result: "hit" (cached URL reused) or "miss" (freshly signed)
var PosterPresignCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "poster_presign_cache_total",
		Help:      "Total number of presigned URL cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthLoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "rejected"
var AuthLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
