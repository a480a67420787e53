package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/handiism/ccvtac/internal/postprocess"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
)

// printer writes progress events and plain lines, styled only on a terminal.
type printer struct {
	out      io.Writer
	colorize bool
	verbose  bool
}

func newPrinter(out io.Writer, verbose bool) *printer {
	return &printer{out: out, colorize: shouldColorize(out), verbose: verbose}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *printer) render(style lipgloss.Style, s string) string {
	if !p.colorize {
		return s
	}
	return style.Render(s)
}

func (p *printer) header(s string) {
	fmt.Fprintln(p.out, p.render(headerStyle, s))
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) dim(format string, args ...any) {
	fmt.Fprintln(p.out, p.render(dimStyle, fmt.Sprintf(format, args...)))
}

// event prints one pipeline event. Verbose events need --verbose.
func (p *printer) event(event postprocess.ProgressEvent) {
	if event.Level == postprocess.LevelVerbose && !p.verbose {
		return
	}

	switch event.Level {
	case postprocess.LevelError:
		fmt.Fprintln(p.out, p.render(errorStyle, "✗ "+event.Message))
	case postprocess.LevelWarning:
		fmt.Fprintln(p.out, p.render(warningStyle, "! "+event.Message))
	case postprocess.LevelSuccess:
		fmt.Fprintln(p.out, p.render(successStyle, "✓ "+event.Message))
	case postprocess.LevelInfo:
		fmt.Fprintln(p.out, p.render(infoStyle, "› "+event.Message))
	default:
		fmt.Fprintln(p.out, p.render(dimStyle, "  "+event.Message))
	}
}
