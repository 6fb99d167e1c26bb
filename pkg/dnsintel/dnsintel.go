// Package dnsintel derives WAF/CDN indicators from DNS records. A zone
// fronted by a WAF vendor often advertises it through verification TXT
// records or CNAME targets pointing at the vendor's edge, which is visible
// without touching the HTTP endpoint at all.
package dnsintel

import (
	"context"
	"net"
	"strings"

	"github.com/miekg/dns"

	"github.com/wafscout/wafscout/pkg/defaults"
	"github.com/wafscout/wafscout/pkg/signature"
)

// Indicator is a DNS-derived detection hint.
type Indicator struct {
	Vendor string
	Name   string // DNS_TXT_<vendor> or DNS_CNAME_<vendor>
}

// ExchangeFunc performs one DNS query. Injectable for tests.
type ExchangeFunc func(ctx context.Context, msg *dns.Msg, server string) (*dns.Msg, error)

// cnameVendors are vendors recognizable from a CNAME target alone.
var cnameVendors = []string{
	signature.VendorCloudflare,
	signature.VendorAkamai,
	signature.VendorFastly,
	signature.VendorCloudFront,
	signature.VendorImperva,
	signature.VendorSucuri,
}

// Resolver looks up TXT and CNAME indicators for hostnames.
type Resolver struct {
	server   string
	table    *signature.Table
	exchange ExchangeFunc
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithServer overrides the DNS server (host:port).
func WithServer(server string) Option {
	return func(r *Resolver) { r.server = server }
}

// WithExchange overrides the query transport (tests).
func WithExchange(fn ExchangeFunc) Option {
	return func(r *Resolver) { r.exchange = fn }
}

// New builds a Resolver matching against the given signature table. The
// system resolver from /etc/resolv.conf is used when available, falling
// back to a public resolver.
func New(table *signature.Table, opts ...Option) *Resolver {
	r := &Resolver{
		server: systemResolver(),
		table:  table,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.exchange == nil {
		client := &dns.Client{Timeout: defaults.DNSTimeout}
		r.exchange = func(ctx context.Context, msg *dns.Msg, server string) (*dns.Msg, error) {
			resp, _, err := client.ExchangeContext(ctx, msg, server)
			return resp, err
		}
	}
	return r
}

func systemResolver() string {
	if cfg, err := dns.ClientConfigFromFile("/etc/resolv.conf"); err == nil && len(cfg.Servers) > 0 {
		return net.JoinHostPort(cfg.Servers[0], cfg.Port)
	}
	return "1.1.1.1:53"
}

// Lookup returns DNS indicators for a hostname. Lookup failures, NXDOMAIN,
// and empty answers all yield no indicators: absence of DNS evidence is
// never an error, matching the classifier's treatment of probe failures.
func (r *Resolver) Lookup(ctx context.Context, host string) []Indicator {
	host = strings.TrimSuffix(strings.TrimSpace(host), ".")
	if host == "" {
		return nil
	}
	fqdn := dns.Fqdn(host)

	var out []Indicator
	seen := make(map[string]bool)
	add := func(vendor, name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, Indicator{Vendor: vendor, Name: name})
		}
	}

	for _, txt := range r.queryTXT(ctx, fqdn) {
		lower := strings.ToLower(txt)
		for _, rule := range r.table.Rules() {
			if strings.Contains(lower, strings.ToLower(rule.Pattern)) {
				add(rule.Vendor, "DNS_TXT_"+rule.Vendor)
			}
		}
	}

	for _, target := range r.queryCNAME(ctx, fqdn) {
		lower := strings.ToLower(target)
		for _, vendor := range cnameVendors {
			if strings.Contains(lower, vendor) {
				add(vendor, "DNS_CNAME_"+vendor)
			}
		}
	}

	return out
}

func (r *Resolver) queryTXT(ctx context.Context, fqdn string) []string {
	msg := new(dns.Msg)
	msg.SetQuestion(fqdn, dns.TypeTXT)
	resp, err := r.exchange(ctx, msg, r.server)
	if err != nil || resp == nil || resp.Rcode != dns.RcodeSuccess {
		return nil
	}
	var records []string
	for _, ans := range resp.Answer {
		if txt, ok := ans.(*dns.TXT); ok {
			records = append(records, strings.Join(txt.Txt, " "))
		}
	}
	return records
}

func (r *Resolver) queryCNAME(ctx context.Context, fqdn string) []string {
	msg := new(dns.Msg)
	msg.SetQuestion(fqdn, dns.TypeCNAME)
	resp, err := r.exchange(ctx, msg, r.server)
	if err != nil || resp == nil || resp.Rcode != dns.RcodeSuccess {
		return nil
	}
	var targets []string
	for _, ans := range resp.Answer {
		if cname, ok := ans.(*dns.CNAME); ok {
			targets = append(targets, cname.Target)
		}
	}
	return targets
}
