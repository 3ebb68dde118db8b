package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/vvka-141/csvload/pkg/csvload"
)

// Option configures a Reader.
type Option func(*Reader)

// WithDelimiter sets the field separator. Zero keeps the default ','.
func WithDelimiter(d rune) Option {
	return func(r *Reader) {
		if d != 0 {
			r.delimiter = d
		}
	}
}

// Reader streams rows from CSV input keyed by normalized header names.
// Not safe for concurrent use.
type Reader struct {
	csv       *csv.Reader
	delimiter rune
	raw       []string
	headers   []string
	line      int
}

// NewReader reads the header row from r and returns a Reader positioned at
// the first data row. Input with no header row yields a Reader with no headers.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	rd := &Reader{delimiter: ','}
	for _, opt := range opts {
		opt(rd)
	}

	rd.csv = csv.NewReader(bufio.NewReaderSize(r, 65536))
	rd.csv.Comma = rd.delimiter
	rd.csv.FieldsPerRecord = -1
	rd.csv.LazyQuotes = true

	header, err := rd.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return rd, nil
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	rd.raw = header
	rd.headers = NormalizeHeaders(header)
	return rd, nil
}

// Headers returns the normalized column names in file order.
func (r *Reader) Headers() []string {
	out := make([]string, len(r.headers))
	copy(out, r.headers)
	return out
}

// RawHeaders returns the header row exactly as read.
func (r *Reader) RawHeaders() []string {
	out := make([]string, len(r.raw))
	copy(out, r.raw)
	return out
}

// Next returns the next data row, or io.EOF when the input is exhausted.
// Fields beyond the header are keyed "_<index>"; missing trailing fields are
// left out of the row.
func (r *Reader) Next() (*csvload.Row, error) {
	if r.headers == nil {
		return nil, io.EOF
	}

	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read CSV row %d: %w", r.line+1, err)
	}
	r.line++

	row := csvload.NewRow(len(record))
	for i, value := range record {
		row.Set(r.keyFor(i), value)
	}
	return row, nil
}

func (r *Reader) keyFor(i int) string {
	if i < len(r.headers) {
		return r.headers[i]
	}
	return "_" + strconv.Itoa(i)
}

// ReadAll reads every remaining row.
func (r *Reader) ReadAll() ([]*csvload.Row, error) {
	var rows []*csvload.Row
	for {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// OpenFile opens path and returns a Reader over it. The caller must close the
// returned file.
func OpenFile(path string, opts ...Option) (*Reader, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV file: %w", err)
	}

	rd, err := NewReader(f, opts...)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return rd, f, nil
}
