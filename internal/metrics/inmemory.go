package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
// Labelled counters are keyed "<label>/<status>".
type Snapshot struct {
	Notifications     map[string]uint64
	Uploads           map[string]uint64
	ProductOperations map[string]uint64
	PublicIPFallbacks map[string]uint64
	GeoLookups        map[string]uint64
	MailSendCount     uint64
	MailSendTotalNs   int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	mu                sync.Mutex
	notifications     map[string]uint64
	uploads           map[string]uint64
	productOperations map[string]uint64
	publicIPFallbacks map[string]uint64
	geoLookups        map[string]uint64
	mailSendCount     uint64
	mailSendTotalNs   int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		notifications:     make(map[string]uint64),
		uploads:           make(map[string]uint64),
		productOperations: make(map[string]uint64),
		publicIPFallbacks: make(map[string]uint64),
		geoLookups:        make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		Notifications:     copyCounts(m.notifications),
		Uploads:           copyCounts(m.uploads),
		ProductOperations: copyCounts(m.productOperations),
		PublicIPFallbacks: copyCounts(m.publicIPFallbacks),
		GeoLookups:        copyCounts(m.geoLookups),
		MailSendCount:     atomic.LoadUint64(&m.mailSendCount),
		MailSendTotalNs:   atomic.LoadInt64(&m.mailSendTotalNs),
	}
}

// IncNotification increments the notification counter.
func (m *InMemoryRecorder) IncNotification(kind, status string) {
	m.inc(m.notifications, kind+"/"+status)
}

// ObserveMailSend records a relay round trip.
func (m *InMemoryRecorder) ObserveMailSend(duration time.Duration) {
	atomic.AddUint64(&m.mailSendCount, 1)
	atomic.AddInt64(&m.mailSendTotalNs, duration.Nanoseconds())
}

// IncUpload increments the upload counter.
func (m *InMemoryRecorder) IncUpload(target, status string) {
	m.inc(m.uploads, target+"/"+status)
}

// IncProductOperation increments the catalog operation counter.
func (m *InMemoryRecorder) IncProductOperation(op, status string) {
	m.inc(m.productOperations, op+"/"+status)
}

// IncPublicIPFallback increments the IP-echo fallback counter.
func (m *InMemoryRecorder) IncPublicIPFallback(status string) {
	m.inc(m.publicIPFallbacks, status)
}

// IncGeoLookup increments the geolocation lookup counter.
func (m *InMemoryRecorder) IncGeoLookup(status string) {
	m.inc(m.geoLookups, status)
}

func (m *InMemoryRecorder) inc(counts map[string]uint64, key string) {
	m.mu.Lock()
	counts[key]++
	m.mu.Unlock()
}

func copyCounts(in map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
