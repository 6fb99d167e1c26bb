// Package output renders per-URL classification rows as CSV and JSON
// documents and streams human-readable lines to the terminal.
package output

import "time"

// Row is one URL's flattened probe-plus-classification outcome. CSV
// columns and JSON result fields mirror each other.
type Row struct {
	URL          string   `json:"url"`
	WAFDetected  bool     `json:"waf_detected"`
	WAFType      string   `json:"waf_type,omitempty"`
	Indicators   []string `json:"indicators"`
	StatusCode   int      `json:"status_code,omitempty"`
	ResponseTime float64  `json:"response_time,omitempty"` // seconds
	Error        string   `json:"error,omitempty"`
}

// Metadata summarizes a whole run.
type Metadata struct {
	ScanID              string `json:"scan_id"`
	Timestamp           int64  `json:"timestamp"`
	ToolVersion         string `json:"tool_version"`
	TotalURLs           int    `json:"total_urls"`
	WAFDetectedCount    int    `json:"waf_detected_count"`
	WAFNotDetectedCount int    `json:"waf_not_detected_count"`
}

// Report is the JSON output document.
type Report struct {
	Metadata Metadata `json:"metadata"`
	Results  []Row    `json:"results"`
}

// BuildReport assembles a report, computing detection counts from rows.
func BuildReport(scanID, version string, rows []Row) *Report {
	meta := Metadata{
		ScanID:      scanID,
		Timestamp:   time.Now().Unix(),
		ToolVersion: version,
		TotalURLs:   len(rows),
	}
	for _, r := range rows {
		if r.WAFDetected {
			meta.WAFDetectedCount++
		} else {
			meta.WAFNotDetectedCount++
		}
	}
	return &Report{Metadata: meta, Results: rows}
}
