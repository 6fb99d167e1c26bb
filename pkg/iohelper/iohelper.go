// Package iohelper provides bounded-read helpers for HTTP response bodies
// and permissive text decoding for classification.
package iohelper

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Body size caps. Probes only need enough body to spot WAF block-page
// fragments; capping bounds memory for arbitrarily large responses.
const (
	// SmallMaxBodySize covers error pages and status responses (8KB).
	SmallMaxBodySize int64 = 8 * 1024

	// MediumMaxBodySize covers typical HTML landing pages (100KB) and is
	// the probe default.
	MediumMaxBodySize int64 = 100 * 1024
)

// ReadBody reads from r up to maxSize bytes. A nil reader yields an empty
// slice. Partial data read before an error is returned alongside it so a
// truncated body remains usable.
func ReadBody(r io.Reader, maxSize int64) ([]byte, error) {
	if r == nil {
		return []byte{}, nil
	}
	return io.ReadAll(io.LimitReader(r, maxSize))
}

// DecodeText converts raw body bytes to valid UTF-8, replacing malformed
// sequences with the replacement rune. Decoding never fails: a probe of a
// host serving broken encodings still classifies on whatever is readable.
func DecodeText(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}

// DrainAndClose reads any remaining data from r and closes it when
// possible, so the underlying connection can be reused for keep-alive.
// Always returns nil to allow use in defer.
func DrainAndClose(r io.Reader) error {
	if r == nil {
		return nil
	}
	// Drain remaining data, bounded to keep a hostile peer from pinning us.
	_, _ = io.Copy(io.Discard, io.LimitReader(r, 64*1024))
	if rc, ok := r.(io.ReadCloser); ok {
		rc.Close()
	}
	return nil
}
