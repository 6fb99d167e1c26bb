// Package runner orchestrates a check run: fan probes out across a
// bounded worker pool, classify each response, and collect rows in input
// order so output is deterministic regardless of scheduling.
package runner

import (
	"context"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/wafscout/wafscout/pkg/defaults"
	"github.com/wafscout/wafscout/pkg/dnsintel"
	"github.com/wafscout/wafscout/pkg/input"
	"github.com/wafscout/wafscout/pkg/output"
	"github.com/wafscout/wafscout/pkg/probe"
	"github.com/wafscout/wafscout/pkg/signature"
	"github.com/wafscout/wafscout/pkg/workerpool"
)

// Config controls a run.
type Config struct {
	// Concurrency is the probe worker count. Probes are independent, so
	// parallelism only shortens wall clock; results stay in input order.
	Concurrency int

	// RateLimit is the global probe rate in requests per second.
	// Non-positive disables limiting.
	RateLimit float64

	// MaxURLs truncates the input list before probing begins.
	MaxURLs int
}

// Stats aggregates a finished run.
type Stats struct {
	Total       int
	Detected    int
	NotDetected int
	Errors      int
	Duration    time.Duration
}

// Runner executes probe-classify pairs over a URL list.
type Runner struct {
	cfg     Config
	prober  *probe.Prober
	table   *signature.Table
	dns     *dnsintel.Resolver // nil disables DNS indicators
	console output.Writer      // nil disables live output
}

// New builds a Runner. table must be non-nil; dns and console are
// optional.
func New(cfg Config, prober *probe.Prober, table *signature.Table, dns *dnsintel.Resolver, console output.Writer) *Runner {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaults.Concurrency
	}
	return &Runner{cfg: cfg, prober: prober, table: table, dns: dns, console: console}
}

// Run probes every URL once and classifies the result. The returned rows
// are in input order; per-URL failures become error rows, never run
// failures. Cancellation of ctx stops remaining probes, which then report
// as timeout/network errors.
func (r *Runner) Run(ctx context.Context, urls []string) ([]output.Row, Stats) {
	start := time.Now()
	urls = input.Cap(urls, r.cfg.MaxURLs)
	rows := make([]output.Row, len(urls))

	var limiter *rate.Limiter
	if r.cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(r.cfg.RateLimit), 1)
	}

	pool := workerpool.New(r.cfg.Concurrency)
	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			rows[i] = r.checkOne(ctx, u, limiter)
			if r.console != nil {
				// Console output is best-effort; a write failure must not
				// taint the row or the run.
				_ = r.console.Write(&rows[i])
			}
		})
	}
	wg.Wait()
	pool.Close()

	// Detected/NotDetected key on WAFDetected so the console summary and
	// the report metadata agree: a row can be both an error and detected
	// when DNS evidence survives a failed probe.
	stats := Stats{Total: len(rows), Duration: time.Since(start)}
	for _, row := range rows {
		if row.Error != "" {
			stats.Errors++
		}
		if row.WAFDetected {
			stats.Detected++
		} else {
			stats.NotDetected++
		}
	}
	return rows, stats
}

func (r *Runner) checkOne(ctx context.Context, target string, limiter *rate.Limiter) output.Row {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return output.Row{
				URL:        target,
				Indicators: []string{},
				Error:      err.Error(),
			}
		}
	}

	var dnsIndicators []dnsintel.Indicator
	if r.dns != nil {
		if host := hostOf(target); host != "" {
			dnsIndicators = r.dns.Lookup(ctx, host)
		}
	}

	res := r.prober.Run(ctx, target)
	cls := r.table.Classify(res)
	return buildRow(res, cls, dnsIndicators)
}

// buildRow merges HTTP classification with DNS indicators. DNS evidence
// counts toward detection, but the HTTP table vendor still wins when both
// are present; DNS alone supplies the vendor only when HTTP saw nothing.
func buildRow(res *probe.Result, cls signature.Classification, dnsIndicators []dnsintel.Indicator) output.Row {
	row := output.Row{
		URL:          res.URL,
		WAFDetected:  cls.Detected,
		WAFType:      cls.Vendor,
		StatusCode:   res.StatusCode,
		ResponseTime: res.Elapsed.Seconds(),
	}
	if res.Err != nil {
		row.Error = res.Err.Error()
	}

	indicators := make([]string, 0, len(dnsIndicators)+len(cls.Indicators))
	for _, ind := range dnsIndicators {
		indicators = append(indicators, ind.Name)
	}
	indicators = append(indicators, cls.Indicators...)
	row.Indicators = indicators

	if len(dnsIndicators) > 0 {
		row.WAFDetected = true
		if row.WAFType == "" {
			row.WAFType = dnsIndicators[0].Vendor
		}
	}
	return row
}

func hostOf(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
