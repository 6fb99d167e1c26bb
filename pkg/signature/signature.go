// Package signature provides passive WAF classification against a static,
// priority-ordered vendor signature table. Classification is a pure function
// over a captured probe result: no I/O, no shared mutable state, identical
// input always yields identical output.
package signature

import (
	"fmt"
	"strings"

	"github.com/wafscout/wafscout/pkg/probe"
)

// MatchKind selects which part of a response a rule is matched against.
type MatchKind string

const (
	// MatchHeaderName matches the pattern against response header names.
	MatchHeaderName MatchKind = "header_name"

	// MatchHeaderValue matches the pattern as a substring of header values.
	MatchHeaderValue MatchKind = "header_value_substring"

	// MatchCookiePrefix matches the pattern as a prefix of cookie names.
	MatchCookiePrefix MatchKind = "cookie_name_prefix"

	// MatchBody matches the pattern as a substring of the body excerpt.
	MatchBody MatchKind = "body_substring"
)

// Rule is a single vendor signature. Patterns are matched
// case-insensitively.
type Rule struct {
	Vendor  string    `yaml:"vendor"`
	Kind    MatchKind `yaml:"kind"`
	Pattern string    `yaml:"pattern"`
}

// Classification is the outcome of evaluating a probe result against a
// signature table.
type Classification struct {
	// Detected is true iff at least one rule fired.
	Detected bool `json:"waf_detected"`

	// Vendor is the vendor of the first matching rule in table order.
	// Empty when nothing matched. Later rules from other vendors do not
	// override it even if they also fire; this first-vendor-wins policy is
	// intentional and must not be replaced by majority voting.
	Vendor string `json:"waf_type,omitempty"`

	// Indicators names every rule that fired, one entry per rule,
	// prefixed by match category (HTTP_HEADER_, COOKIE_, BODY_).
	Indicators []string `json:"indicators"`
}

// Table is an ordered sequence of rules. Order is significant: the vendor
// of the earliest matching rule wins ties.
type Table struct {
	rules []Rule
}

// NewTable builds a table from rules, preserving declaration order.
// Returns an error if any rule is malformed.
func NewTable(rules []Rule) (*Table, error) {
	for i, r := range rules {
		if err := validateRule(r); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
	}
	return &Table{rules: rules}, nil
}

func validateRule(r Rule) error {
	if strings.TrimSpace(r.Vendor) == "" {
		return fmt.Errorf("empty vendor")
	}
	if strings.TrimSpace(r.Pattern) == "" {
		return fmt.Errorf("empty pattern (vendor %q)", r.Vendor)
	}
	switch r.Kind {
	case MatchHeaderName, MatchHeaderValue, MatchCookiePrefix, MatchBody:
		return nil
	default:
		return fmt.Errorf("unknown match kind %q (vendor %q)", r.Kind, r.Vendor)
	}
}

// Rules returns a copy of the table's rules in declaration order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Len returns the number of rules in the table.
func (t *Table) Len() int { return len(t.rules) }

// Indicator returns the indicator string a rule contributes when it fires.
func (r Rule) Indicator() string {
	switch r.Kind {
	case MatchCookiePrefix:
		return "COOKIE_" + r.Vendor
	case MatchBody:
		return "BODY_" + r.Vendor
	default:
		return "HTTP_HEADER_" + r.Vendor
	}
}

// Classify evaluates the table against a captured probe result.
//
// A failed probe is evidence of nothing: when res.Err is set the result is
// not-detected with no indicators, regardless of any populated fields.
//
// Scan order is fixed: header names, header values, cookie names, body.
// Every rule that matches contributes its indicator (no short-circuit);
// duplicate indicator strings are collapsed. Detected is true iff any rule
// fired, and Vendor is taken from the fired rule with the lowest table
// position.
func (t *Table) Classify(res *probe.Result) Classification {
	cls := Classification{Indicators: []string{}}
	if res == nil || res.Err != nil {
		return cls
	}

	fired := make([]bool, len(t.rules))
	firstIdx := -1
	mark := func(i int) {
		fired[i] = true
		if firstIdx == -1 || i < firstIdx {
			firstIdx = i
		}
	}

	// Phase 1: header names.
	for i, r := range t.rules {
		if r.Kind != MatchHeaderName || fired[i] {
			continue
		}
		for name := range res.Headers {
			if containsFold(name, r.Pattern) {
				mark(i)
				break
			}
		}
	}

	// Phase 2: header values.
	for i, r := range t.rules {
		if r.Kind != MatchHeaderValue || fired[i] {
			continue
		}
	values:
		for _, vals := range res.Headers {
			for _, v := range vals {
				if containsFold(v, r.Pattern) {
					mark(i)
					break values
				}
			}
		}
	}

	// Phase 3: cookie names.
	for i, r := range t.rules {
		if r.Kind != MatchCookiePrefix || fired[i] {
			continue
		}
		for _, c := range res.Cookies {
			if hasPrefixFold(c.Name, r.Pattern) {
				mark(i)
				break
			}
		}
	}

	// Phase 4: body excerpt.
	if res.BodyExcerpt != "" {
		body := strings.ToLower(res.BodyExcerpt)
		for i, r := range t.rules {
			if r.Kind != MatchBody || fired[i] {
				continue
			}
			if strings.Contains(body, strings.ToLower(r.Pattern)) {
				mark(i)
			}
		}
	}

	seen := make(map[string]bool)
	for i, r := range t.rules {
		if !fired[i] {
			continue
		}
		ind := r.Indicator()
		if !seen[ind] {
			seen[ind] = true
			cls.Indicators = append(cls.Indicators, ind)
		}
	}

	cls.Detected = len(cls.Indicators) > 0
	if firstIdx >= 0 {
		cls.Vendor = t.rules[firstIdx].Vendor
	}
	return cls
}

// Classify evaluates the built-in default table. See Table.Classify.
func Classify(res *probe.Result) Classification {
	return DefaultTable().Classify(res)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func hasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}
