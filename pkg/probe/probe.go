// Package probe issues single passive HTTP GET probes and captures the
// response artifacts the signature classifier consumes: status, headers,
// cookies, a bounded body excerpt, and elapsed time. A probe never fails
// loudly; network, DNS, TLS, and timeout errors are folded into the result
// so one dead host cannot abort a batch.
package probe

import (
	"context"
	"net/http"
	"time"

	"github.com/wafscout/wafscout/pkg/defaults"
	"github.com/wafscout/wafscout/pkg/httpclient"
	"github.com/wafscout/wafscout/pkg/iohelper"
)

// Result captures everything observed for one URL. It is immutable once
// returned: created per URL, classified once, then serialized.
type Result struct {
	URL         string         `json:"url"`
	StatusCode  int            `json:"status_code,omitempty"`
	Headers     http.Header    `json:"-"`
	Cookies     []*http.Cookie `json:"-"`
	BodyExcerpt string         `json:"-"`
	Elapsed     time.Duration  `json:"-"`
	Err         *Error         `json:"error,omitempty"`
}

// Config controls probe behavior.
type Config struct {
	// Timeout bounds the whole request including body read.
	Timeout time.Duration

	// MaxBodySize caps the body excerpt in bytes.
	MaxBodySize int64

	// UserAgent overrides the default browser-like user agent.
	UserAgent string

	// Client overrides the HTTP client (tests). When nil a pooled client
	// that follows redirects is built from Timeout.
	Client *http.Client
}

// Prober executes probes. Safe for concurrent use.
type Prober struct {
	client    *http.Client
	userAgent string
	maxBody   int64
}

// New builds a Prober. Zero-value config fields get scanning defaults.
func New(cfg Config) *Prober {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.ProbeTimeout
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = iohelper.MediumMaxBodySize
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	client := cfg.Client
	if client == nil {
		client = httpclient.New(httpclient.Config{
			Timeout:            cfg.Timeout,
			InsecureSkipVerify: true,
			FollowRedirects:    true,
		})
	}
	return &Prober{
		client:    client,
		userAgent: cfg.UserAgent,
		maxBody:   cfg.MaxBodySize,
	}
}

// Run probes a single URL with one GET, following redirects. Only the
// terminal response is captured; redirect-chain headers are not inspected
// (known limitation: a WAF that tags only an intermediate hop is missed).
// Run always returns a Result; failures populate Result.Err.
func (p *Prober) Run(ctx context.Context, rawURL string) *Result {
	res := &Result{URL: rawURL}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		res.Err = &Error{Kind: KindNetwork, Message: err.Error()}
		return res
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		res.Elapsed = time.Since(start)
		res.Err = classifyErr(err)
		return res
	}
	defer iohelper.DrainAndClose(resp.Body)

	// A truncated or aborted body is still classifiable; keep what arrived.
	body, _ := iohelper.ReadBody(resp.Body, p.maxBody)
	res.Elapsed = time.Since(start)

	res.StatusCode = resp.StatusCode
	res.Headers = resp.Header
	res.Cookies = resp.Cookies()
	res.BodyExcerpt = iohelper.DecodeText(body)

	return res
}
