package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	pretendSuffix = " (pretend)"
	existsSuffix  = " (already exists)"

	// NoMatchesMessage is printed when the filter matched nothing
	NoMatchesMessage = "No files or directories match!"
)

// TextReporter writes the plain text console output of a run
type TextReporter struct {
	config Config

	accent lipgloss.Style
	muted  lipgloss.Style
	warn   lipgloss.Style
	fail   lipgloss.Style
}

// NewTextReporter creates a reporter. Missing writers fall back to the
// standard streams.
func NewTextReporter(config Config) *TextReporter {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	if config.ErrWriter == nil {
		config.ErrWriter = os.Stderr
	}

	renderer := lipgloss.NewRenderer(config.Writer)
	renderer.SetColorProfile(termenv.ANSI256)

	return &TextReporter{
		config: config,
		accent: renderer.NewStyle().Foreground(lipgloss.Color("#A78BFA")),
		muted:  renderer.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		warn:   renderer.NewStyle().Foreground(lipgloss.Color("#F9E2AF")).Bold(true),
		fail:   renderer.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Bold(true),
	}
}

// Rename prints "<path> -> <new>[ (pretend)][ (already exists)]"
func (r *TextReporter) Rename(path, newName string, pretend, exists bool) {
	var sb strings.Builder

	sb.WriteString(path)
	sb.WriteString(r.colorize(" -> ", r.muted))
	sb.WriteString(r.colorize(newName, r.accent))

	if pretend {
		sb.WriteString(r.colorize(pretendSuffix, r.muted))
	}
	if exists {
		sb.WriteString(r.colorize(existsSuffix, r.warn))
	}

	r.writeLine(r.config.Writer, sb.String())
}

// Error prints an "ERROR:" diagnostic
func (r *TextReporter) Error(format string, args ...interface{}) {
	r.writeLine(r.config.ErrWriter, r.colorize("ERROR:", r.fail)+" "+fmt.Sprintf(format, args...))
}

// Warning prints a "WARNING:" diagnostic
func (r *TextReporter) Warning(format string, args ...interface{}) {
	r.writeLine(r.config.ErrWriter, r.colorize("WARNING:", r.warn)+" "+fmt.Sprintf(format, args...))
}

// Summary prints the counters line after a blank separator line
func (r *TextReporter) Summary(summary string) {
	r.writeLine(r.config.Writer, "")
	r.writeLine(r.config.Writer, summary)
}

// NoMatches reports that the filter matched nothing
func (r *TextReporter) NoMatches() {
	r.writeLine(r.config.Writer, NoMatchesMessage)
}

func (r *TextReporter) colorize(text string, style lipgloss.Style) string {
	if !r.config.ShowColors {
		return text
	}
	return style.Render(text)
}

func (r *TextReporter) writeLine(w io.Writer, line string) {
	fmt.Fprintln(w, line)
}
