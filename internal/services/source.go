package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vvka-141/csvload/internal/artifact"
	"github.com/vvka-141/csvload/internal/csvio"
	"github.com/vvka-141/csvload/internal/sqlgen"
	"github.com/vvka-141/csvload/pkg/csvload"
)

// StoreFactory returns the artifact store for a work directory.
type StoreFactory func(workDir string) artifact.Store

// OSStores keeps artifacts on disk.
func OSStores(workDir string) artifact.Store {
	return artifact.NewOSStore(workDir)
}

// csvData is a fully buffered CSV input.
type csvData struct {
	rawHeaders []string
	headers    []string
	rows       []*csvload.Row
}

// readCSV loads every row of path with normalized headers.
func readCSV(path string, delimiter rune) (*csvData, error) {
	var opts []csvio.Option
	if delimiter != 0 {
		opts = append(opts, csvio.WithDelimiter(delimiter))
	}

	reader, closer, err := csvio.OpenFile(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer closer.Close()

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV %s: %w", path, err)
	}
	return &csvData{rawHeaders: reader.RawHeaders(), headers: reader.Headers(), rows: rows}, nil
}

// withTimeout bounds ctx by timeout when positive.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

// connect opens a connection through factory. The caller closes it.
func connect(ctx context.Context, factory csvload.ConnectorFactory, cfg *csvload.ConnectionConfig) (csvload.DBConnection, error) {
	connector, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connector: %w", err)
	}

	conn, err := connector.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// closeConn releases conn, logging rather than returning a close failure.
func closeConn(conn csvload.DBConnection, logger csvload.Logger) {
	if err := conn.Close(); err != nil {
		logger.Warn("Failed to close database connection: %v", err)
		return
	}
	logger.Verbose("Connection closed")
}

// execFailed wraps a statement failure with a preview of the SQL.
func execFailed(what, query string, err error) error {
	return fmt.Errorf("%s failed: %w\n\nStatement: %s\n\nOriginal error: %w",
		what, csvload.ErrExecutionFailed, sqlgen.Preview(query, csvload.MaxErrorPreviewLength), err)
}
