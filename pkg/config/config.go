// Package config holds CLI configuration and flag parsing.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/wafscout/wafscout/pkg/defaults"
	"github.com/wafscout/wafscout/pkg/input"
)

// Output formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatBoth = "both"
)

// Config holds all CLI options.
type Config struct {
	// Target settings
	TargetURLs input.StringSliceFlag // -u, repeated or comma-separated
	ListFile   string                // -l, one URL per line
	StdinInput bool                  // -stdin
	ZoneID     string                // -zone-id, restrict Route53 to one zone
	MaxURLs    int                   // -max-urls, cap applied before probing

	// Execution settings
	Concurrency int           // parallel probe workers
	RateLimit   float64       // global requests per second
	Timeout     time.Duration // per-URL HTTP timeout
	DNSCheck    bool          // -dns, TXT/CNAME indicator lookups

	// Signature settings
	SignatureFile string // -signatures, YAML table replacing the built-in

	// Output settings
	OutputFormat string // csv, json, both
	OutputDir    string // local destination directory
	S3Bucket     string // -s3-bucket or S3_BUCKET env
	LocalStorage bool   // -local-storage, force local even with a bucket
	Silent       bool
	Verbose      bool
	NoColor      bool
	ShowVersion  bool
}

// ParseFlags parses os.Args into a validated Config.
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	// === INPUT ===
	flag.Var(&cfg.TargetURLs, "u", "Target URL(s) - comma-separated or repeated")
	flag.StringVar(&cfg.ListFile, "l", "", "File containing target URLs, one per line")
	flag.BoolVar(&cfg.StdinInput, "stdin", false, "Read targets from stdin")
	flag.StringVar(&cfg.ZoneID, "zone-id", "", "Route53 hosted zone ID (default: all zones)")
	flag.IntVar(&cfg.MaxURLs, "max-urls", 0, "Maximum URLs to check (0 = unlimited)")

	// === EXECUTION ===
	flag.IntVar(&cfg.Concurrency, "concurrency", defaults.Concurrency, "Concurrent probe workers")
	flag.IntVar(&cfg.Concurrency, "c", defaults.Concurrency, "Concurrent probe workers (alias)")
	flag.Float64Var(&cfg.RateLimit, "rate-limit", defaults.RateLimit, "Max requests per second (0 = unlimited)")
	timeout := flag.Int("timeout", int(defaults.ProbeTimeout/time.Second), "HTTP timeout in seconds")
	flag.BoolVar(&cfg.DNSCheck, "dns", false, "Also check DNS TXT/CNAME records for indicators")

	// === SIGNATURES ===
	flag.StringVar(&cfg.SignatureFile, "signatures", "", "Custom signature table (YAML), replaces built-in")

	// === OUTPUT ===
	flag.StringVar(&cfg.OutputFormat, "format", FormatBoth, "Output format: csv, json, both")
	flag.StringVar(&cfg.OutputDir, "output-dir", defaults.OutputDir, "Local output directory")
	flag.StringVar(&cfg.S3Bucket, "s3-bucket", os.Getenv("S3_BUCKET"), "S3 bucket for results (default: $S3_BUCKET)")
	flag.BoolVar(&cfg.LocalStorage, "local-storage", false, "Save locally even when an S3 bucket is configured")
	flag.BoolVar(&cfg.Silent, "silent", false, "Suppress banner and per-URL output")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose output (indicators per URL)")
	flag.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Print version and exit")

	flag.Parse()
	cfg.Timeout = time.Duration(*timeout) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case FormatCSV, FormatJSON, FormatBoth:
	default:
		return fmt.Errorf("invalid format %q: want csv, json, or both", c.OutputFormat)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate-limit must be >= 0, got %g", c.RateLimit)
	}
	if c.MaxURLs < 0 {
		return fmt.Errorf("max-urls must be >= 0, got %d", c.MaxURLs)
	}
	return nil
}

// HasLocalTargets reports whether any local URL source was given; when
// false the tool falls back to Route53 enumeration.
func (c *Config) HasLocalTargets() bool {
	return len(c.TargetURLs) > 0 || c.ListFile != "" || c.StdinInput
}
