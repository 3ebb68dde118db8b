package logging

import (
	"sync"

	"github.com/vvka-141/csvload/pkg/csvload"
)

type bufferedEntry struct {
	level  int
	format string
	args   []interface{}
}

const (
	levelVerbose = iota
	levelInfo
	levelWarn
	levelError
)

// BufferedLogger holds messages until Flush replays them on the target.
// Used while a spinner owns the terminal.
type BufferedLogger struct {
	target  csvload.Logger
	mu      sync.Mutex
	entries []bufferedEntry
}

// NewBufferedLogger creates a BufferedLogger in front of target.
func NewBufferedLogger(target csvload.Logger) *BufferedLogger {
	return &BufferedLogger{target: target}
}

func (l *BufferedLogger) add(level int, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, bufferedEntry{level: level, format: format, args: args})
}

// Verbose buffers a verbose message.
func (l *BufferedLogger) Verbose(format string, args ...interface{}) {
	l.add(levelVerbose, format, args)
}

// Info buffers an informational message.
func (l *BufferedLogger) Info(format string, args ...interface{}) {
	l.add(levelInfo, format, args)
}

// Warn buffers a warning.
func (l *BufferedLogger) Warn(format string, args ...interface{}) {
	l.add(levelWarn, format, args)
}

// Error buffers an error message.
func (l *BufferedLogger) Error(format string, args ...interface{}) {
	l.add(levelError, format, args)
}

// Flush writes buffered messages to the target in order and clears the buffer.
func (l *BufferedLogger) Flush() {
	l.mu.Lock()
	entries := l.entries
	l.entries = nil
	l.mu.Unlock()

	for _, e := range entries {
		switch e.level {
		case levelVerbose:
			l.target.Verbose(e.format, e.args...)
		case levelInfo:
			l.target.Info(e.format, e.args...)
		case levelWarn:
			l.target.Warn(e.format, e.args...)
		case levelError:
			l.target.Error(e.format, e.args...)
		}
	}
}

var _ csvload.Logger = (*BufferedLogger)(nil)
