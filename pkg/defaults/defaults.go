// Package defaults provides canonical default values shared across the
// codebase. Reference these constants instead of hardcoding literals.
package defaults

import "time"

// Version is the current wafscout version.
const Version = "1.2.0"

// UserAgent is the browser-like user agent sent with probes. WAF edge
// nodes serve different responses to obvious bots, so probes present as a
// desktop browser.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

const (
	// ProbeTimeout is the per-URL HTTP timeout.
	ProbeTimeout = 10 * time.Second

	// DNSTimeout bounds a single DNS indicator lookup.
	DNSTimeout = 5 * time.Second

	// DialTimeout bounds connection establishment.
	DialTimeout = 10 * time.Second

	// IdleConnTimeout is how long idle pooled connections are kept.
	IdleConnTimeout = 90 * time.Second
)

const (
	// Concurrency is the default number of parallel probe workers.
	Concurrency = 10

	// RateLimit is the default global probe rate in requests per second.
	// Probing other people's edges politely is the point; this mirrors the
	// classic half-second pause between sequential checks.
	RateLimit = 2.0
)

// Exit codes for the CLI.
const (
	ExitSuccess       = 0 // Clean exit
	ExitUserError     = 2 // Invalid arguments or no URLs to check
	ExitInternalError = 4 // Unexpected internal error
)

// OutputDir is where results land when no explicit destination is set.
const OutputDir = "output"
