package signature

import "sync"

// Well-known vendor identifiers used by the default table.
const (
	VendorCloudflare = "cloudflare"
	VendorAWSWAF     = "aws_waf"
	VendorAkamai     = "akamai"
	VendorFastly     = "fastly"
	VendorImperva    = "imperva"
	VendorF5BigIP    = "f5_bigip"
	VendorBarracuda  = "barracuda"
	VendorCitrix     = "citrix"
	VendorSucuri     = "sucuri"
	VendorCloudFront = "cloudfront"
)

// defaultRules is the built-in signature table. Order is load-bearing:
// earlier vendors win classification ties, so the more specific edge/WAF
// products precede plain CDN products that share indicators (aws_waf and
// cloudfront both carry x-amz-cf-* headers).
var defaultRules = []Rule{
	// Cloudflare
	{Vendor: VendorCloudflare, Kind: MatchHeaderName, Pattern: "cf-ray"},
	{Vendor: VendorCloudflare, Kind: MatchHeaderName, Pattern: "cf-cache-status"},
	{Vendor: VendorCloudflare, Kind: MatchHeaderName, Pattern: "cf-request-id"},
	{Vendor: VendorCloudflare, Kind: MatchHeaderValue, Pattern: "cloudflare"},
	{Vendor: VendorCloudflare, Kind: MatchCookiePrefix, Pattern: "__cfduid"},
	{Vendor: VendorCloudflare, Kind: MatchCookiePrefix, Pattern: "__cf_bm"},
	{Vendor: VendorCloudflare, Kind: MatchCookiePrefix, Pattern: "cf_clearance"},
	{Vendor: VendorCloudflare, Kind: MatchBody, Pattern: "cloudflare"},

	// AWS WAF (shares CloudFront edge headers; listed first so the WAF
	// classification wins when both would fire)
	{Vendor: VendorAWSWAF, Kind: MatchHeaderName, Pattern: "x-amzn-waf-"},
	{Vendor: VendorAWSWAF, Kind: MatchHeaderName, Pattern: "x-amz-cf-id"},
	{Vendor: VendorAWSWAF, Kind: MatchHeaderName, Pattern: "x-amz-cf-pop"},
	{Vendor: VendorAWSWAF, Kind: MatchBody, Pattern: "request blocked"},

	// Akamai
	{Vendor: VendorAkamai, Kind: MatchHeaderName, Pattern: "x-akamai-transformed"},
	{Vendor: VendorAkamai, Kind: MatchHeaderValue, Pattern: "akamaighost"},
	{Vendor: VendorAkamai, Kind: MatchHeaderValue, Pattern: "akamai"},
	{Vendor: VendorAkamai, Kind: MatchBody, Pattern: "akamai"},

	// Fastly
	{Vendor: VendorFastly, Kind: MatchHeaderName, Pattern: "x-fastly"},
	{Vendor: VendorFastly, Kind: MatchHeaderValue, Pattern: "fastly"},

	// Imperva Incapsula
	{Vendor: VendorImperva, Kind: MatchHeaderName, Pattern: "x-iinfo"},
	{Vendor: VendorImperva, Kind: MatchHeaderValue, Pattern: "incapsula"},
	{Vendor: VendorImperva, Kind: MatchCookiePrefix, Pattern: "incap_ses"},
	{Vendor: VendorImperva, Kind: MatchCookiePrefix, Pattern: "visid_incap"},
	{Vendor: VendorImperva, Kind: MatchBody, Pattern: "_incapsula_resource"},

	// F5 BIG-IP
	{Vendor: VendorF5BigIP, Kind: MatchHeaderName, Pattern: "x-wa-info"},
	{Vendor: VendorF5BigIP, Kind: MatchHeaderValue, Pattern: "bigip"},
	{Vendor: VendorF5BigIP, Kind: MatchCookiePrefix, Pattern: "bigipserver"},
	{Vendor: VendorF5BigIP, Kind: MatchBody, Pattern: "the requested url was rejected"},

	// Barracuda
	{Vendor: VendorBarracuda, Kind: MatchHeaderValue, Pattern: "barracuda"},
	{Vendor: VendorBarracuda, Kind: MatchCookiePrefix, Pattern: "barra_counter_session"},

	// Citrix NetScaler
	{Vendor: VendorCitrix, Kind: MatchHeaderValue, Pattern: "netscaler"},
	{Vendor: VendorCitrix, Kind: MatchCookiePrefix, Pattern: "ns_af"},
	{Vendor: VendorCitrix, Kind: MatchCookiePrefix, Pattern: "citrix_ns_id"},

	// Sucuri
	{Vendor: VendorSucuri, Kind: MatchHeaderName, Pattern: "x-sucuri-id"},
	{Vendor: VendorSucuri, Kind: MatchHeaderName, Pattern: "x-sucuri-cache"},
	{Vendor: VendorSucuri, Kind: MatchHeaderValue, Pattern: "sucuri"},
	{Vendor: VendorSucuri, Kind: MatchBody, Pattern: "sucuri website firewall"},

	// CloudFront (plain CDN; after aws_waf on purpose)
	{Vendor: VendorCloudFront, Kind: MatchHeaderName, Pattern: "x-amz-cf-id"},
	{Vendor: VendorCloudFront, Kind: MatchHeaderName, Pattern: "x-amz-cf-pop"},
	{Vendor: VendorCloudFront, Kind: MatchHeaderValue, Pattern: "cloudfront"},
}

var (
	defaultTable     *Table
	defaultTableOnce sync.Once
)

// DefaultTable returns the built-in signature table. The table is
// constructed once and shared; it is read-only and safe for concurrent use.
func DefaultTable() *Table {
	defaultTableOnce.Do(func() {
		t, err := NewTable(defaultRules)
		if err != nil {
			// Built-in rules are validated by tests; a bad entry is a
			// programming error.
			panic(err)
		}
		defaultTable = t
	})
	return defaultTable
}
