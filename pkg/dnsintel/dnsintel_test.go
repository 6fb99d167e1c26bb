package dnsintel

import (
	"context"
	"errors"
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wafscout/wafscout/pkg/signature"
)

func reply(msg *dns.Msg, answers ...dns.RR) *dns.Msg {
	resp := new(dns.Msg)
	resp.SetReply(msg)
	resp.Answer = answers
	return resp
}

func txtRR(name string, records ...string) *dns.TXT {
	return &dns.TXT{
		Hdr: dns.RR_Header{Name: name, Rrtype: dns.TypeTXT, Class: dns.ClassINET, Ttl: 300},
		Txt: records,
	}
}

func cnameRR(name, target string) *dns.CNAME {
	return &dns.CNAME{
		Hdr:    dns.RR_Header{Name: name, Rrtype: dns.TypeCNAME, Class: dns.ClassINET, Ttl: 300},
		Target: target,
	}
}

func TestLookupTXTIndicator(t *testing.T) {
	r := New(signature.DefaultTable(), WithExchange(func(ctx context.Context, msg *dns.Msg, server string) (*dns.Msg, error) {
		if msg.Question[0].Qtype == dns.TypeTXT {
			return reply(msg, txtRR(msg.Question[0].Name, "cloudflare-verify=abc123")), nil
		}
		return reply(msg), nil
	}))

	got := r.Lookup(context.Background(), "example.com")
	require.Len(t, got, 1)
	assert.Equal(t, "cloudflare", got[0].Vendor)
	assert.Equal(t, "DNS_TXT_cloudflare", got[0].Name)
}

func TestLookupCNAMEIndicator(t *testing.T) {
	r := New(signature.DefaultTable(), WithExchange(func(ctx context.Context, msg *dns.Msg, server string) (*dns.Msg, error) {
		if msg.Question[0].Qtype == dns.TypeCNAME {
			return reply(msg, cnameRR(msg.Question[0].Name, "dualstack.edge.fastly.net.")), nil
		}
		return reply(msg), nil
	}))

	got := r.Lookup(context.Background(), "www.example.com")
	require.Len(t, got, 1)
	assert.Equal(t, "fastly", got[0].Vendor)
	assert.Equal(t, "DNS_CNAME_fastly", got[0].Name)
}

func TestLookupNoEvidence(t *testing.T) {
	r := New(signature.DefaultTable(), WithExchange(func(ctx context.Context, msg *dns.Msg, server string) (*dns.Msg, error) {
		return reply(msg, txtRR(msg.Question[0].Name, "v=spf1 include:example.net ~all")), nil
	}))

	assert.Empty(t, r.Lookup(context.Background(), "example.com"))
}

func TestLookupQueryFailure(t *testing.T) {
	r := New(signature.DefaultTable(), WithExchange(func(ctx context.Context, msg *dns.Msg, server string) (*dns.Msg, error) {
		return nil, errors.New("i/o timeout")
	}))

	assert.Empty(t, r.Lookup(context.Background(), "example.com"))
}

func TestLookupNXDomain(t *testing.T) {
	r := New(signature.DefaultTable(), WithExchange(func(ctx context.Context, msg *dns.Msg, server string) (*dns.Msg, error) {
		resp := new(dns.Msg)
		resp.SetRcode(msg, dns.RcodeNameError)
		return resp, nil
	}))

	assert.Empty(t, r.Lookup(context.Background(), "nope.invalid"))
}

func TestLookupDedupesIndicators(t *testing.T) {
	r := New(signature.DefaultTable(), WithExchange(func(ctx context.Context, msg *dns.Msg, server string) (*dns.Msg, error) {
		if msg.Question[0].Qtype == dns.TypeTXT {
			return reply(msg,
				txtRR(msg.Question[0].Name, "cloudflare-verify=a"),
				txtRR(msg.Question[0].Name, "cloudflare-verify=b"),
			), nil
		}
		return reply(msg), nil
	}))

	got := r.Lookup(context.Background(), "example.com")
	assert.Len(t, got, 1)
}

func TestLookupEmptyHost(t *testing.T) {
	r := New(signature.DefaultTable(), WithExchange(func(ctx context.Context, msg *dns.Msg, server string) (*dns.Msg, error) {
		t.Fatal("no query expected for empty host")
		return nil, nil
	}))

	assert.Empty(t, r.Lookup(context.Background(), "  "))
}
