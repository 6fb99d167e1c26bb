package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRunCapturesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("CF-Ray", "abc123")
		http.SetCookie(w, &http.Cookie{Name: "__cf_bm", Value: "tok"})
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("Attention Required! | Cloudflare"))
	}))
	defer srv.Close()

	p := New(Config{Timeout: 5 * time.Second})
	res := p.Run(context.Background(), srv.URL)

	if res.Err != nil {
		t.Fatalf("unexpected probe error: %v", res.Err)
	}
	if res.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", res.StatusCode)
	}
	if got := res.Headers.Get("CF-Ray"); got != "abc123" {
		t.Errorf("CF-Ray = %q, want abc123", got)
	}
	if len(res.Cookies) != 1 || res.Cookies[0].Name != "__cf_bm" {
		t.Errorf("cookies = %v, want __cf_bm", res.Cookies)
	}
	if !strings.Contains(res.BodyExcerpt, "Cloudflare") {
		t.Errorf("body excerpt %q missing marker", res.BodyExcerpt)
	}
	if res.Elapsed <= 0 {
		t.Error("elapsed not recorded")
	}
}

func TestRunFollowsRedirects(t *testing.T) {
	final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Sucuri-ID", "15005")
		w.Write([]byte("ok"))
	}))
	defer final.Close()

	hop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Intermediate hop carries its own indicator, which must NOT be
		// captured: only the terminal response is classified.
		w.Header().Set("CF-Ray", "hop")
		http.Redirect(w, r, final.URL, http.StatusFound)
	}))
	defer hop.Close()

	p := New(Config{Timeout: 5 * time.Second})
	res := p.Run(context.Background(), hop.URL)

	if res.Err != nil {
		t.Fatalf("unexpected probe error: %v", res.Err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200 from terminal response", res.StatusCode)
	}
	if res.Headers.Get("X-Sucuri-ID") == "" {
		t.Error("terminal response headers not captured")
	}
	if res.Headers.Get("CF-Ray") != "" {
		t.Error("redirect-chain header leaked into result")
	}
}

func TestRunTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	p := New(Config{Timeout: 100 * time.Millisecond})
	res := p.Run(context.Background(), srv.URL)

	if res.Err == nil {
		t.Fatal("expected timeout error")
	}
	if res.Err.Kind != KindTimeout {
		t.Errorf("kind = %q, want %q", res.Err.Kind, KindTimeout)
	}
	if res.StatusCode != 0 {
		t.Errorf("status = %d on failure, want 0", res.StatusCode)
	}
	if len(res.Headers) != 0 {
		t.Errorf("headers populated on failure: %v", res.Headers)
	}
}

func TestRunConnectionRefused(t *testing.T) {
	// Grab a port that nothing listens on.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	p := New(Config{Timeout: 2 * time.Second})
	res := p.Run(context.Background(), addr)

	if res.Err == nil {
		t.Fatal("expected connection error")
	}
	if res.Err.Kind != KindConnRefused && res.Err.Kind != KindNetwork {
		t.Errorf("kind = %q, want connection_refused or network_error", res.Err.Kind)
	}
}

func TestRunDNSFailure(t *testing.T) {
	p := New(Config{Timeout: 3 * time.Second})
	res := p.Run(context.Background(), "https://definitely-not-a-real-host.invalid")

	if res.Err == nil {
		t.Fatal("expected DNS error")
	}
	if res.Err.Kind != KindDNS && res.Err.Kind != KindTimeout {
		t.Errorf("kind = %q, want dns_failure", res.Err.Kind)
	}
}

func TestRunBodyCapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("a", 64*1024)))
	}))
	defer srv.Close()

	p := New(Config{Timeout: 5 * time.Second, MaxBodySize: 1024})
	res := p.Run(context.Background(), srv.URL)

	if res.Err != nil {
		t.Fatalf("unexpected probe error: %v", res.Err)
	}
	if len(res.BodyExcerpt) != 1024 {
		t.Errorf("body excerpt = %d bytes, want 1024", len(res.BodyExcerpt))
	}
}

func TestRunMalformedEncodingRecovered(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte{'o', 'k', 0xff, 0xfe, 'x'})
	}))
	defer srv.Close()

	p := New(Config{Timeout: 5 * time.Second})
	res := p.Run(context.Background(), srv.URL)

	if res.Err != nil {
		t.Fatalf("malformed encoding failed the probe: %v", res.Err)
	}
	if !strings.HasPrefix(res.BodyExcerpt, "ok") {
		t.Errorf("readable prefix lost: %q", res.BodyExcerpt)
	}
	if !strings.Contains(res.BodyExcerpt, "�") {
		t.Errorf("invalid bytes not replaced: %q", res.BodyExcerpt)
	}
}

func TestRunInvalidURL(t *testing.T) {
	p := New(Config{Timeout: time.Second})
	res := p.Run(context.Background(), "http://[::1]:bad-port")

	if res.Err == nil {
		t.Fatal("expected error for unparseable URL")
	}
}

func TestRunSendsBrowserHeaders(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
	}))
	defer srv.Close()

	p := New(Config{Timeout: 5 * time.Second})
	res := p.Run(context.Background(), srv.URL)

	if res.Err != nil {
		t.Fatalf("unexpected probe error: %v", res.Err)
	}
	if !strings.Contains(gotUA, "Mozilla") {
		t.Errorf("user agent %q not browser-like", gotUA)
	}
	if gotAccept == "" {
		t.Error("accept header not sent")
	}
}
