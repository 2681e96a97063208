// Package output renders rename notices, diagnostics and the run summary
package output

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/73ai/rename-regex/internal/options"
)

// Config contains configuration for console output
type Config struct {
	Writer     io.Writer // notices and summary (default: os.Stdout)
	ErrWriter  io.Writer // ERROR and WARNING lines (default: os.Stderr)
	ShowColors bool
}

// ShouldColor resolves a --color mode against the writer notices go to
func ShouldColor(mode options.ColorMode, w io.Writer) bool {
	switch mode {
	case options.ColorAlways:
		return true
	case options.ColorNever:
		return false
	}

	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewLogger returns the traversal logger. It is quiet below warn level
// unless verbose is set.
func NewLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: "rr",
	})
}
