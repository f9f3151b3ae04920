// Package metrics defines and registers all custom Prometheus metrics for the
// venue booking API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init through promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "venuehub"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// Registrations counts sign-up attempts that reached the store.
// Labels:
//   - kind: "user" or "provider"
//   - result: "created" or "duplicate"
var Registrations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_registrations_total",
		Help:      "Total number of registration attempts, by actor kind and result.",
	},
	[]string{"kind", "result"},
)

// Logins counts login outcomes.
// Labels:
//   - kind: "user" or "provider"
//   - result: "ok", "invalid_credentials", "not_approved", "deactivated"
var Logins = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by actor kind and result.",
	},
	[]string{"kind", "result"},
)

// GuardRejections counts requests stopped by the access guard.
// Label:
//   - reason: "no_token", "expired", "invalid", "revoked", "actor_not_found", "internal"
var GuardRejections = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_guard_rejections_total",
		Help:      "Total number of requests rejected by the access guard.",
	},
	[]string{"reason"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts notification outcomes.
// Label:
//   - result: "sent", "failed", "dropped"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notifications, by delivery result.",
	},
	[]string{"result"},
)

// NotificationQueueDepth tracks pending notifications per worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Upload metrics ────────────────────────────────────────────────────────────

// UploadsTotal counts processed uploads.
// Labels:
//   - kind: "image" or "spreadsheet"
//   - result: "stored" or "rejected"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of uploaded files, by kind and result.",
	},
	[]string{"kind", "result"},
)

// UploadDuration measures validation plus transcoding time.
var UploadDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_processing_duration_seconds",
		Help:      "Duration of upload validation and image transcoding.",
		Buckets:   prometheus.DefBuckets,
	},
)
