package signature

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTable = `
rules:
  - vendor: cloudflare
    kind: header_name
    pattern: cf-ray
  - vendor: acme_waf
    kind: cookie_name_prefix
    pattern: acme_sid
  - vendor: acme_waf
    kind: body_substring
    pattern: blocked by acme
`

func TestParseTable(t *testing.T) {
	table, err := ParseTable([]byte(sampleTable))
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	rules := table.Rules()
	assert.Equal(t, "cloudflare", rules[0].Vendor)
	assert.Equal(t, MatchHeaderName, rules[0].Kind)
	assert.Equal(t, "acme_sid", rules[1].Pattern)
}

func TestParseTableClassifies(t *testing.T) {
	table, err := ParseTable([]byte(sampleTable))
	require.NoError(t, err)

	cookies := []*http.Cookie{{Name: "acme_sid_42", Value: "x"}}
	cls := table.Classify(okResult(http.Header{}, cookies, ""))

	assert.True(t, cls.Detected)
	assert.Equal(t, "acme_waf", cls.Vendor)
	assert.Equal(t, []string{"COOKIE_acme_waf"}, cls.Indicators)
}

func TestParseTableRejectsEmpty(t *testing.T) {
	_, err := ParseTable([]byte("rules: []"))
	assert.Error(t, err)
}

func TestParseTableRejectsUnknownKind(t *testing.T) {
	_, err := ParseTable([]byte("rules:\n  - vendor: v\n    kind: jsonpath\n    pattern: x\n"))
	assert.Error(t, err)
}

func TestParseTableRejectsBadYAML(t *testing.T) {
	_, err := ParseTable([]byte("rules: [unclosed"))
	assert.Error(t, err)
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sigs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTable), 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
