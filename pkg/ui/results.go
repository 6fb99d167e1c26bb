package ui

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"
)

// Banner prints the startup banner to stderr.
func Banner(version string) {
	fmt.Fprintln(os.Stderr, TitleStyle.Render("wafscout")+" "+SubtitleStyle.Render("v"+version))
	fmt.Fprintln(os.Stderr, SubtitleStyle.Render("passive WAF detection for DNS zones and URL lists"))
	fmt.Fprintln(os.Stderr)
}

// PrintRow prints one probed URL in httpx-style bracket notation:
//
//	[waf] [cloudflare] https://example.com [200] [312ms]
//	[none] https://bare.example.org [200] [87ms]
//	[error] https://down.example.net timeout: context deadline exceeded
func PrintRow(url string, detected bool, vendor string, status int, seconds float64, errMsg string) {
	var parts []string

	switch {
	case errMsg != "":
		parts = append(parts, bracket(ErrStyle.Render("error")))
	case detected:
		parts = append(parts, bracket(DetectedStyle.Render("waf")))
		if vendor != "" {
			parts = append(parts, bracket(VendorStyle.Render(vendor)))
		}
	default:
		parts = append(parts, bracket(NotDetectedStyle.Render("none")))
	}

	parts = append(parts, url)

	if errMsg != "" {
		parts = append(parts, SubtitleStyle.Render(truncate(errMsg, 100)))
	} else {
		parts = append(parts, bracket(StatusCodeStyle(status).Render(fmt.Sprintf("%d", status))))
		ms := time.Duration(seconds * float64(time.Second)).Milliseconds()
		parts = append(parts, bracket(StatLabelStyle.Render(fmt.Sprintf("%dms", ms))))
	}

	fmt.Println(strings.Join(parts, " "))
}

// PrintIndicators prints fired indicators indented under a result row.
func PrintIndicators(indicators []string) {
	fmt.Println("      " + SubtitleStyle.Render("-> "+strings.Join(indicators, "; ")))
}

// PrintSummary prints the end-of-run summary block.
func PrintSummary(total, detected, notDetected, errors int, elapsed time.Duration) {
	sep := strings.Repeat("─", 48)
	fmt.Println(sep)
	fmt.Printf("  %s %s\n", StatLabelStyle.Render("Total URLs:"), StatValueStyle.Render(fmt.Sprintf("%d", total)))
	fmt.Printf("  %s %s\n", StatLabelStyle.Render("WAF detected:"), DetectedStyle.Render(fmt.Sprintf("%d", detected)))
	fmt.Printf("  %s %s\n", StatLabelStyle.Render("No WAF:"), NotDetectedStyle.Render(fmt.Sprintf("%d", notDetected)))
	if errors > 0 {
		fmt.Printf("  %s %s\n", StatLabelStyle.Render("Errors:"), ErrStyle.Render(fmt.Sprintf("%d", errors)))
	}
	fmt.Printf("  %s %s\n", StatLabelStyle.Render("Duration:"), StatValueStyle.Render(elapsed.Round(time.Millisecond).String()))
	fmt.Println(sep)
}

// Infof prints a status line to stderr.
func Infof(format string, args ...any) {
	fmt.Fprintln(os.Stderr, SubtitleStyle.Render(fmt.Sprintf(format, args...)))
}

// Errorf prints an error line to stderr.
func Errorf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, FatalStyle.Render(fmt.Sprintf(format, args...)))
}

func bracket(s string) string {
	return BracketStyle.Render("[") + s + BracketStyle.Render("]")
}

func truncate(s string, maxLen int) string {
	if maxLen <= 3 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}
