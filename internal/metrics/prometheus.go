package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hyjain"

// PrometheusRecorder implements Recorder on a dedicated Prometheus registry.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	notifications     *prometheus.CounterVec
	mailSendDuration  prometheus.Histogram
	uploads           *prometheus.CounterVec
	productOperations *prometheus.CounterVec
	publicIPFallbacks *prometheus.CounterVec
	geoLookups        *prometheus.CounterVec
}

// NewPrometheus creates a recorder with Go runtime and process collectors registered.
func NewPrometheus() *PrometheusRecorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		registry: reg,
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification requests by kind and outcome",
		}, []string{"kind", "status"}),
		mailSendDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mail_send_duration_seconds",
			Help:      "Mail relay round trip time",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		uploads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Uploads by target and outcome",
		}, []string{"target", "status"}),
		productOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "product_operations_total",
			Help:      "Catalog operations by operation and outcome",
		}, []string{"op", "status"}),
		publicIPFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "public_ip_fallbacks_total",
			Help:      "IP-echo lookups for loopback or private source addresses",
		}, []string{"status"}),
		geoLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geo_lookups_total",
			Help:      "Geolocation lookups by outcome",
		}, []string{"status"}),
	}
}

// Handler serves the registry in Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// IncNotification increments the notification counter.
func (p *PrometheusRecorder) IncNotification(kind, status string) {
	p.notifications.WithLabelValues(kind, status).Inc()
}

// ObserveMailSend records a relay round trip.
func (p *PrometheusRecorder) ObserveMailSend(duration time.Duration) {
	p.mailSendDuration.Observe(duration.Seconds())
}

// IncUpload increments the upload counter.
func (p *PrometheusRecorder) IncUpload(target, status string) {
	p.uploads.WithLabelValues(target, status).Inc()
}

// IncProductOperation increments the catalog operation counter.
func (p *PrometheusRecorder) IncProductOperation(op, status string) {
	p.productOperations.WithLabelValues(op, status).Inc()
}

// IncPublicIPFallback increments the IP-echo fallback counter.
func (p *PrometheusRecorder) IncPublicIPFallback(status string) {
	p.publicIPFallbacks.WithLabelValues(status).Inc()
}

// IncGeoLookup increments the geolocation lookup counter.
func (p *PrometheusRecorder) IncGeoLookup(status string) {
	p.geoLookups.WithLabelValues(status).Inc()
}
