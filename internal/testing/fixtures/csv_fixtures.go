package fixtures

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CSVBuilder provides a fluent API for building CSV inputs.
//
// Example usage:
//
//	path := NewCSV("Name", "Age").
//	    Row("Alice", "30").
//	    Row("Bob", "").
//	    WriteFile(t, dir, "people.csv")
type CSVBuilder struct {
	delimiter string
	lines     []string
}

// NewCSV starts a CSV with the given header row. No headers means an empty file.
func NewCSV(headers ...string) *CSVBuilder {
	b := &CSVBuilder{delimiter: ","}
	if len(headers) > 0 {
		b.lines = append(b.lines, strings.Join(headers, b.delimiter))
	}
	return b
}

// Delimiter changes the separator for rows added afterwards, and rewrites the header.
func (b *CSVBuilder) Delimiter(d string) *CSVBuilder {
	for i, line := range b.lines {
		b.lines[i] = strings.ReplaceAll(line, b.delimiter, d)
	}
	b.delimiter = d
	return b
}

// Row appends a record. Values are written verbatim.
func (b *CSVBuilder) Row(values ...string) *CSVBuilder {
	b.lines = append(b.lines, strings.Join(values, b.delimiter))
	return b
}

// Raw appends a line as-is, for quoting and malformed-input cases.
func (b *CSVBuilder) Raw(line string) *CSVBuilder {
	b.lines = append(b.lines, line)
	return b
}

// String renders the CSV with a trailing newline.
func (b *CSVBuilder) String() string {
	if len(b.lines) == 0 {
		return ""
	}
	return strings.Join(b.lines, "\n") + "\n"
}

// WriteFile writes the CSV to dir/name and returns its path.
func (b *CSVBuilder) WriteFile(t testing.TB, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}
