// Package httpclient provides a shared HTTP client factory with connection
// pooling tuned for probing many distinct hosts in one run.
package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/wafscout/wafscout/pkg/defaults"
)

// Config holds HTTP client options.
type Config struct {
	// Timeout is the total request timeout including body read.
	Timeout time.Duration

	// InsecureSkipVerify skips TLS certificate verification. Probing wants
	// the WAF's response even when the certificate chain is broken.
	InsecureSkipVerify bool

	// FollowRedirects makes the client follow redirect chains so the
	// terminal response is what gets classified. When false the first
	// response is returned as-is.
	FollowRedirects bool

	// Proxy is an optional HTTP/HTTPS proxy URL.
	Proxy string

	// MaxIdleConns caps idle connections across all hosts.
	MaxIdleConns int

	// MaxConnsPerHost caps connections per host. Probe runs touch many
	// hosts once each, so per-host pooling matters less than total reuse.
	MaxConnsPerHost int

	// IdleConnTimeout is how long idle connections stay pooled.
	IdleConnTimeout time.Duration

	// DialTimeout bounds connection establishment.
	DialTimeout time.Duration
}

// DefaultConfig returns defaults for probe workloads: redirects followed,
// TLS verification skipped, modest per-host pooling.
func DefaultConfig() Config {
	return Config{
		Timeout:            defaults.ProbeTimeout,
		InsecureSkipVerify: true,
		FollowRedirects:    true,
		MaxIdleConns:       100,
		MaxConnsPerHost:    4,
		IdleConnTimeout:    defaults.IdleConnTimeout,
		DialTimeout:        defaults.DialTimeout,
	}
}

// New creates a client with the given configuration. Zero values fall back
// to DefaultConfig values.
func New(cfg Config) *http.Client {
	def := DefaultConfig()
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = def.MaxIdleConns
	}
	if cfg.MaxConnsPerHost == 0 {
		cfg.MaxConnsPerHost = def.MaxConnsPerHost
	}
	if cfg.IdleConnTimeout == 0 {
		cfg.IdleConnTimeout = def.IdleConnTimeout
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = def.DialTimeout
	}

	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		MaxIdleConns:          cfg.MaxIdleConns,
		MaxIdleConnsPerHost:   cfg.MaxConnsPerHost,
		MaxConnsPerHost:       cfg.MaxConnsPerHost,
		IdleConnTimeout:       cfg.IdleConnTimeout,
		ForceAttemptHTTP2:     true,
		ExpectContinueTimeout: 1 * time.Second,
		TLSHandshakeTimeout:   cfg.DialTimeout,
		DialContext:           dialer.DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		},
	}

	if cfg.Proxy != "" {
		if proxyURL, err := url.Parse(cfg.Proxy); err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
		// Malformed proxy URLs are ignored; the run proceeds direct.
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}
	if !cfg.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return client
}
