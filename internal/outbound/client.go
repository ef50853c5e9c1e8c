// Package outbound builds the HTTP clients used for third-party calls.
package outbound

import (
	"net"
	"net/http"
	"time"
)

const (
	// DefaultTimeout is the total request timeout when none is configured.
	DefaultTimeout = 15 * time.Second
	// DialTimeout is the connection timeout.
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the TLS negotiation timeout.
	TLSHandshakeTimeout = 10 * time.Second

	// UserAgent identifies this service to providers.
	UserAgent = "Hyjain-API/1.0"
)

// NewHTTPClient creates an HTTP client for provider calls.
// Redirects are not followed; every provider here answers directly.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: TLSHandshakeTimeout,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
