package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/csvload/internal/tui"
)

// ConsoleLogger writes log messages to stderr.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	color   bool
	out     io.Writer
	mu      sync.Mutex

	verboseStyle lipgloss.Style
	warnStyle    lipgloss.Style
	errorStyle   lipgloss.Style
}

// NewConsoleLogger creates a ConsoleLogger on stderr.
// If verbose is false, Verbose() calls are no-ops.
// Prefixes are coloured only when stderr is a terminal.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewWriterLogger(os.Stderr, verbose, tui.ColorEnabled(os.Stderr))
}

// NewWriterLogger creates a ConsoleLogger writing to w.
func NewWriterLogger(w io.Writer, verbose, color bool) *ConsoleLogger {
	l := &ConsoleLogger{verbose: verbose, color: color, out: w}
	if color {
		r := lipgloss.NewRenderer(w)
		l.verboseStyle = r.NewStyle().Foreground(tui.ColorMuted)
		l.warnStyle = r.NewStyle().Foreground(tui.ColorWarning).Bold(true)
		l.errorStyle = r.NewStyle().Foreground(tui.ColorError).Bold(true)
	}
	return l
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(l.verboseStyle, "[VERBOSE] ", format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write(lipgloss.Style{}, "", format, args)
}

// Warn logs a problem that does not stop the run.
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	l.write(l.warnStyle, "[WARN] ", format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(l.errorStyle, "[ERROR] ", format, args)
}

func (l *ConsoleLogger) write(style lipgloss.Style, prefix, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	if prefix != "" && l.color {
		prefix = style.Render(prefix[:len(prefix)-1]) + " "
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.out, prefix+msg+"\n")
}
