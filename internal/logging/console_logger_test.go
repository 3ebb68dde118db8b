package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/csvload/pkg/csvload"
)

var (
	_ csvload.Logger = (*ConsoleLogger)(nil)
	_ csvload.Logger = (*NullLogger)(nil)
)

func TestConsoleLogger_Levels(t *testing.T) {
	tests := []struct {
		name     string
		verbose  bool
		log      func(l *ConsoleLogger)
		expected string
	}{
		{"verbose enabled", true, func(l *ConsoleLogger) { l.Verbose("test message: %s", "value") }, "[VERBOSE] test message: value\n"},
		{"verbose disabled", false, func(l *ConsoleLogger) { l.Verbose("test message: %s", "value") }, ""},
		{"info", false, func(l *ConsoleLogger) { l.Info("info message: %s", "value") }, "info message: value\n"},
		{"warn", false, func(l *ConsoleLogger) { l.Warn("warn message: %s", "value") }, "[WARN] warn message: value\n"},
		{"error", false, func(l *ConsoleLogger) { l.Error("error message: %s", "value") }, "[ERROR] error message: value\n"},
		{"no args keeps percent", false, func(l *ConsoleLogger) { l.Info("100%") }, "100%\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewWriterLogger(&buf, tt.verbose, false))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestConsoleLogger_ColorKeepsPrefixText(t *testing.T) {
	var buf bytes.Buffer
	NewWriterLogger(&buf, false, true).Warn("careful")

	assert.Contains(t, buf.String(), "WARN")
	assert.True(t, strings.HasSuffix(buf.String(), " careful\n"))
}

func TestConsoleLogger_WritesToStderr(t *testing.T) {
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	logger := NewConsoleLogger(false)
	logger.Error("error message: %s", "value")

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	io.Copy(&buf, r)

	assert.Equal(t, "[ERROR] error message: value\n", buf.String())
}

func TestConsoleLogger_ConcurrentSafety(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, true, false)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("message %d", id)
			logger.Verbose("verbose %d", id)
			logger.Warn("warn %d", id)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 300)
}

func TestNullLogger_DiscardsEverything(t *testing.T) {
	logger := NewNullLogger()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("message %d", id)
			logger.Verbose("verbose %d", id)
			logger.Warn("warn %d", id)
			logger.Error("error %d", id)
		}(i)
	}
	wg.Wait()
}

func BenchmarkConsoleLogger_Verbose(b *testing.B) {
	logger := NewWriterLogger(io.Discard, true, false)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Verbose("benchmark message %d", i)
	}
}

func BenchmarkConsoleLogger_VerboseDisabled(b *testing.B) {
	logger := NewWriterLogger(io.Discard, false, false)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Verbose("benchmark message %d", i)
	}
}

func ExampleNullLogger() {
	logger := NewNullLogger()
	logger.Info("This message is discarded")
	logger.Warn("This too")
	logger.Error("And this")
	fmt.Println("Done")
	// Output:
	// Done
}
