package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CSV content types for storage.
const (
	ContentTypeCSV  = "text/csv"
	ContentTypeJSON = "application/json"
)

// csvHeader is the fixed column set; reorderings break downstream
// consumers, so treat it as a wire format.
var csvHeader = []string{
	"URL", "WAF_Detected", "WAF_Type", "Indicators",
	"HTTP_Status", "Response_Time", "Error",
}

// RenderCSV renders rows as a CSV document with a header line. Empty
// fields render as N/A so spreadsheet filters behave.
func RenderCSV(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for i, r := range rows {
		if err := w.Write(csvRecord(r)); err != nil {
			return nil, fmt.Errorf("csv row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv flush: %w", err)
	}
	return buf.Bytes(), nil
}

func csvRecord(r Row) []string {
	detected := "no"
	if r.WAFDetected {
		detected = "yes"
	}
	return []string{
		r.URL,
		detected,
		orNA(r.WAFType),
		orNA(strings.Join(r.Indicators, "; ")),
		statusField(r.StatusCode),
		timeField(r.ResponseTime),
		orNA(r.Error),
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func statusField(code int) string {
	if code == 0 {
		return "N/A"
	}
	return strconv.Itoa(code)
}

func timeField(seconds float64) string {
	if seconds == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.3fs", seconds)
}

// RenderJSON renders the report as an indented JSON document.
func RenderJSON(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return buf.Bytes(), nil
}
