package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncNotification is a no-op.
func (n *NoopRecorder) IncNotification(kind, status string) {}

// ObserveMailSend is a no-op.
func (n *NoopRecorder) ObserveMailSend(duration time.Duration) {}

// IncUpload is a no-op.
func (n *NoopRecorder) IncUpload(target, status string) {}

// IncProductOperation is a no-op.
func (n *NoopRecorder) IncProductOperation(op, status string) {}

// IncPublicIPFallback is a no-op.
func (n *NoopRecorder) IncPublicIPFallback(status string) {}

// IncGeoLookup is a no-op.
func (n *NoopRecorder) IncGeoLookup(status string) {}
