// Package geo resolves an approximate, human-readable location for a request's
// source address. Every step degrades to a placeholder; nothing here returns an error.
package geo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/hyjain/hyjain-api/internal/cache"
	"github.com/hyjain/hyjain-api/internal/metrics"
	"github.com/hyjain/hyjain-api/internal/model"
	"github.com/hyjain/hyjain-api/internal/outbound"
)

// Default provider endpoints.
const (
	DefaultIPEchoURL = "https://api.ipify.org?format=json"
	DefaultLookupURL = "http://ip-api.com/json"
)

// LocationCache memoizes resolved labels by public address.
type LocationCache interface {
	GetLocation(ctx context.Context, ip string) (string, error)
	SetLocation(ctx context.Context, ip, label string, ttl time.Duration) error
}

// Config configures a Locator.
type Config struct {
	IPEchoURL string
	LookupURL string
	CacheTTL  time.Duration
	Timeout   time.Duration
}

// Locator runs the address → public address → location label pipeline.
type Locator struct {
	httpClient *http.Client
	ipEchoURL  string
	lookupURL  string
	cache      LocationCache
	cacheTTL   time.Duration
	logger     *slog.Logger
	metrics    metrics.Recorder
}

// Option customizes a Locator.
type Option func(*Locator)

// WithCache enables lookup caching.
func WithCache(c LocationCache) Option {
	return func(l *Locator) { l.cache = c }
}

// WithHTTPClient replaces the outbound client.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Locator) { l.httpClient = c }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(r metrics.Recorder) Option {
	return func(l *Locator) { l.metrics = r }
}

// NewLocator creates a Locator.
func NewLocator(cfg Config, logger *slog.Logger, opts ...Option) *Locator {
	if cfg.IPEchoURL == "" {
		cfg.IPEchoURL = DefaultIPEchoURL
	}
	if cfg.LookupURL == "" {
		cfg.LookupURL = DefaultLookupURL
	}
	if logger == nil {
		logger = slog.Default()
	}

	l := &Locator{
		httpClient: outbound.NewHTTPClient(cfg.Timeout),
		ipEchoURL:  cfg.IPEchoURL,
		lookupURL:  strings.TrimSuffix(cfg.LookupURL, "/"),
		cacheTTL:   cfg.CacheTTL,
		logger:     logger,
		metrics:    metrics.NewNoop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate resolves a location label for addr. The returned IP is the address the
// label was resolved for: the public address when the fallback succeeded,
// otherwise addr unchanged.
func (l *Locator) Locate(ctx context.Context, addr string) model.Location {
	ip := addr
	if IsLocalAddress(addr) {
		ip = l.publicIP(ctx, addr)
	}

	return model.Location{
		Label: l.label(ctx, ip),
		IP:    ip,
	}
}

// publicIP asks the IP-echo service for this host's public address.
func (l *Locator) publicIP(ctx context.Context, fallback string) string {
	var resp struct {
		IP string `json:"ip"`
	}
	if err := l.getJSON(ctx, l.ipEchoURL, &resp); err != nil {
		l.metrics.IncPublicIPFallback(metrics.StatusError)
		l.logger.Error("public_ip_lookup_failed", "error", err)
		return fallback
	}

	ip := strings.TrimSpace(resp.IP)
	if net.ParseIP(ip) == nil {
		l.metrics.IncPublicIPFallback(metrics.StatusError)
		l.logger.Error("public_ip_lookup_failed", "error", fmt.Sprintf("unusable address %q", resp.IP))
		return fallback
	}

	l.metrics.IncPublicIPFallback(metrics.StatusSuccess)
	return ip
}

// lookupResponse is the subset of the geolocation response we read.
type lookupResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	City       string `json:"city"`
	RegionName string `json:"regionName"`
}

// label resolves "<city>, <region>" or the placeholder.
func (l *Locator) label(ctx context.Context, ip string) string {
	if l.cache != nil && ip != "" {
		label, err := l.cache.GetLocation(ctx, ip)
		switch {
		case err == nil:
			l.metrics.IncGeoLookup(metrics.StatusCacheHit)
			return label
		case !errors.Is(err, cache.ErrCacheMiss):
			l.logger.Warn("geo_cache_read_failed", "error", err)
		}
	}

	var resp lookupResponse
	if err := l.getJSON(ctx, l.lookupURL+"/"+url.PathEscape(ip), &resp); err != nil {
		l.metrics.IncGeoLookup(metrics.StatusError)
		l.logger.Error("geo_lookup_failed", "error", err)
		return model.LocationUnavailable
	}

	if resp.Status != "success" || resp.City == "" || resp.RegionName == "" {
		l.metrics.IncGeoLookup(metrics.StatusUnavailable)
		l.logger.Info("geo_lookup_unavailable", "status", resp.Status, "message", resp.Message)
		return model.LocationUnavailable
	}

	label := model.FormatLocationLabel(resp.City, resp.RegionName)
	l.metrics.IncGeoLookup(metrics.StatusSuccess)

	if l.cache != nil && ip != "" {
		if err := l.cache.SetLocation(ctx, ip, label, l.cacheTTL); err != nil {
			l.logger.Warn("geo_cache_write_failed", "error", err)
		}
	}

	return label
}

func (l *Locator) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", outbound.UserAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s returned status %d", req.URL.Host, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// IsLocalAddress reports whether addr cannot be geolocated directly: loopback,
// link-local, private, unspecified, or not an IP at all.
func IsLocalAddress(addr string) bool {
	ip := net.ParseIP(strings.TrimSpace(addr))
	if ip == nil {
		return true
	}
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsUnspecified()
}

// ClientIP extracts the host part of a request's remote address.
// With a trusted proxy in front, RemoteAddr has already been rewritten.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
