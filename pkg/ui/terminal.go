package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// StdoutIsTerminal reports whether stdout is attached to a terminal.
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// StderrIsTerminal reports whether stderr is attached to a terminal.
func StderrIsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// DisableColor forces plain ASCII output regardless of terminal support.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// AutoColor downgrades to plain output when either output stream is piped
// or the environment opts out (NO_COLOR, TERM=dumb). Result rows go to
// stdout and status lines to stderr, and the lipgloss profile is global,
// so both streams must be terminals for styling. Call once at startup.
func AutoColor() {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" ||
		!StdoutIsTerminal() || !StderrIsTerminal() {
		DisableColor()
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}
