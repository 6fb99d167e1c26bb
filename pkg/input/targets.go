// Package input collects and normalizes target URLs from flags, list
// files, and stdin.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// TargetSource consolidates local URL input methods. Route53 enumeration
// lives in pkg/cloud; both produce the same flat []string the runner
// consumes.
type TargetSource struct {
	URLs     []string  // from -u flags
	ListFile string    // from -l flag, one URL per line
	Stdin    io.Reader // non-nil when piped input should be read
}

// Targets returns the deduplicated, normalized URL list in input order.
// Blank lines and # comments are skipped; bare hostnames get an https://
// scheme. Order is preserved so output rows diff cleanly across runs.
func (ts *TargetSource) Targets() ([]string, error) {
	var targets []string
	seen := make(map[string]bool)

	add := func(raw string) {
		u := Normalize(raw)
		if u == "" || seen[u] {
			return
		}
		seen[u] = true
		targets = append(targets, u)
	}

	for _, u := range ts.URLs {
		add(u)
	}

	if ts.ListFile != "" {
		f, err := os.Open(ts.ListFile)
		if err != nil {
			return nil, fmt.Errorf("open url list: %w", err)
		}
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			add(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read url list: %w", err)
		}
	}

	if ts.Stdin != nil {
		scanner := bufio.NewScanner(ts.Stdin)
		for scanner.Scan() {
			add(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
	}

	return targets, nil
}

// Normalize trims a raw target line and ensures it carries a scheme.
// Comments and blanks normalize to the empty string.
func Normalize(raw string) string {
	t := strings.TrimSpace(raw)
	if t == "" || strings.HasPrefix(t, "#") {
		return ""
	}
	if !strings.HasPrefix(t, "http://") && !strings.HasPrefix(t, "https://") {
		t = "https://" + t
	}
	return t
}

// Cap truncates urls to max entries. The cap is applied before probing
// begins; there is no mid-run cancellation state to preserve. A
// non-positive max means unlimited.
func Cap(urls []string, max int) []string {
	if max > 0 && len(urls) > max {
		return urls[:max]
	}
	return urls
}
