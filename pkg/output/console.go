package output

import (
	"sync"

	"github.com/wafscout/wafscout/pkg/ui"
)

// Writer receives rows as they are produced.
type Writer interface {
	Write(row *Row) error
	Close() error
}

// ConsoleWriter streams one formatted line per probed URL to the terminal.
// Safe for concurrent use; rows may arrive in any scheduling order while
// the persisted CSV/JSON stay in input order.
type ConsoleWriter struct {
	silent  bool
	verbose bool
	mu      sync.Mutex
}

// NewConsoleWriter creates a console writer. In silent mode nothing is
// printed; in verbose mode error details and indicators are included.
func NewConsoleWriter(silent, verbose bool) *ConsoleWriter {
	return &ConsoleWriter{silent: silent, verbose: verbose}
}

func (w *ConsoleWriter) Write(row *Row) error {
	if w.silent {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	ui.PrintRow(row.URL, row.WAFDetected, row.WAFType, row.StatusCode,
		row.ResponseTime, row.Error)
	if w.verbose && len(row.Indicators) > 0 {
		ui.PrintIndicators(row.Indicators)
	}
	return nil
}

func (w *ConsoleWriter) Close() error { return nil }
