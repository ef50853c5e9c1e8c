// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Outcome labels shared by the recorders.
const (
	StatusSuccess     = "success"
	StatusError       = "error"
	StatusRejected    = "rejected"
	StatusSoftFailure = "soft_failure"
	StatusUnavailable = "unavailable"
	StatusCacheHit    = "cache_hit"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus or keep them in memory for tests.
type Recorder interface {
	// Notification pipeline
	IncNotification(kind, status string)
	ObserveMailSend(duration time.Duration)

	// Uploads; target is "image" or "file"
	IncUpload(target, status string)

	// Catalog operations; op is "list", "create", "update", "delete"
	IncProductOperation(op, status string)

	// Geolocation enrichment
	IncPublicIPFallback(status string)
	IncGeoLookup(status string)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
