package services

import (
	"context"
	"fmt"

	"github.com/vvka-141/csvload/internal/artifact"
	"github.com/vvka-141/csvload/internal/sqlgen"
	"github.com/vvka-141/csvload/pkg/csvload"
)

// RowInsertionService implements the RowInserter interface.
// Thread-Safety: safe for concurrent InsertRows() calls only when each call
// uses its own work directory.
type RowInsertionService struct {
	connectorFactory csvload.ConnectorFactory
	stores           StoreFactory
	logger           csvload.Logger
}

// NewRowInsertionService creates a RowInsertionService with all dependencies injected.
// Panics on nil dependencies.
func NewRowInsertionService(
	connectorFactory csvload.ConnectorFactory,
	stores StoreFactory,
	logger csvload.Logger,
) *RowInsertionService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if stores == nil {
		panic("stores cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &RowInsertionService{
		connectorFactory: connectorFactory,
		stores:           stores,
		logger:           logger,
	}
}

// InsertRows replaces the contents of config.Table with the CSV rows.
// Rows pass through output.json before reaching the database. The column list
// is the first row's keys.
func (s *RowInsertionService) InsertRows(ctx context.Context, config csvload.InsertConfig) (*csvload.InsertResult, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := withTimeout(ctx, config.Timeout)
	defer cancel()

	s.logger.Verbose("Reading %s", config.CSVPath)
	data, err := readCSV(config.CSVPath, config.Delimiter)
	if err != nil {
		return nil, err
	}
	if len(data.rows) == 0 {
		return nil, fmt.Errorf("%s has no data rows: %w", config.CSVPath, csvload.ErrEmptyCSV)
	}

	art := artifact.New(s.stores(config.WorkDir), csvload.InsertArtifact, config.KeepArtifacts)
	defer art.Discard(s.logger)

	if err := art.WriteRows(data.rows); err != nil {
		return nil, err
	}
	s.logger.Verbose("Wrote %d row(s) to %s", len(data.rows), art.Path())

	rows, err := art.ReadRows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || rows[0].Len() == 0 {
		return nil, fmt.Errorf("%s holds no rows: %w", art.Path(), csvload.ErrEmptyCSV)
	}

	columns := rows[0].Keys()
	statements, err := sqlgen.BuildBulkInsert(config.Table, columns, rows, config.BatchSize)
	if err != nil {
		return nil, err
	}

	conn, err := connect(ctx, s.connectorFactory, config.Connection)
	if err != nil {
		return nil, err
	}
	defer closeConn(conn, s.logger)

	truncate := sqlgen.TruncateStatement(config.Table)
	s.logger.Verbose("%s", truncate)
	if _, err := conn.ExecContext(ctx, truncate); err != nil {
		return nil, execFailed("truncate", truncate, err)
	}

	var affected int64
	for i, stmt := range statements {
		s.logger.Verbose("Inserting batch %d/%d (%d row(s))", i+1, len(statements), stmt.Rows)
		res, err := conn.ExecContext(ctx, stmt.SQL, stmt.Args...)
		if err != nil {
			return nil, execFailed(fmt.Sprintf("insert batch %d/%d", i+1, len(statements)), stmt.SQL, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			s.logger.Verbose("Affected-row count unavailable for batch %d: %v", i+1, err)
			continue
		}
		affected += n
	}

	s.logger.Info("✓ Inserted %d row(s) into %s", affected, sqlgen.QuoteIdentifier(config.Table))

	return &csvload.InsertResult{
		Table:        config.Table,
		Columns:      columns,
		RowsRead:     len(rows),
		RowsAffected: affected,
		Statements:   len(statements),
	}, nil
}

var _ csvload.RowInserter = (*RowInsertionService)(nil)
