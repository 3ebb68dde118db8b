package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/vvka-141/csvload/internal/artifact"
	"github.com/vvka-141/csvload/pkg/csvload"
)

type execCall struct {
	query       string
	args        []any
	hasDeadline bool
}

// recordingConn records statements and fails the statement whose text
// contains failOn, when set.
type recordingConn struct {
	mu       sync.Mutex
	calls    []execCall
	failOn   string
	failErr  error
	closed   bool
	closeErr error
}

func (c *recordingConn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, hasDeadline := ctx.Deadline()
	c.calls = append(c.calls, execCall{query: query, args: args, hasDeadline: hasDeadline})
	if c.failOn != "" && strings.Contains(query, c.failOn) {
		return nil, c.failErr
	}
	var rows int64
	if strings.HasPrefix(query, "INSERT") {
		rows = countTuples(query)
	}
	return driverResult(rows), nil
}

func (c *recordingConn) Close() error {
	c.closed = true
	return c.closeErr
}

func (c *recordingConn) queries() []string {
	out := make([]string, len(c.calls))
	for i, call := range c.calls {
		out[i] = call.query
	}
	return out
}

// countTuples counts the VALUES tuples of a placeholder INSERT.
func countTuples(query string) int64 {
	idx := strings.Index(query, "VALUES")
	if idx < 0 {
		return 0
	}
	return int64(strings.Count(query[idx:], "("))
}

type driverResult int64

func (r driverResult) LastInsertId() (int64, error) { return 0, errors.New("not supported") }
func (r driverResult) RowsAffected() (int64, error) { return int64(r), nil }

type mockConnector struct {
	conn csvload.DBConnection
	err  error
}

func (m *mockConnector) Connect(_ context.Context) (csvload.DBConnection, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.conn, nil
}

// factoryFor returns a factory that hands out connector and counts calls.
func factoryFor(connector csvload.Connector, calls *int) csvload.ConnectorFactory {
	return func(*csvload.ConnectionConfig) (csvload.Connector, error) {
		*calls++
		return connector, nil
	}
}

func failingFactory(err error) csvload.ConnectorFactory {
	return func(*csvload.ConnectionConfig) (csvload.Connector, error) {
		return nil, err
	}
}

func storesFor(store artifact.Store) StoreFactory {
	return func(string) artifact.Store { return store }
}

// vanishingStore accepts writes but never keeps them.
type vanishingStore struct {
	*artifact.MemoryStore
}

func (s vanishingStore) WriteFile(string, []byte) error { return nil }

// recordingLogger captures verbose, info and warning lines.
type recordingLogger struct {
	mu       sync.Mutex
	verboses []string
	infos    []string
	warns    []string
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verboses = append(l.verboses, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warn(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Error(string, ...interface{}) {}
