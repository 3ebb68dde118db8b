package services

import (
	"context"
	"fmt"

	"github.com/vvka-141/csvload/internal/artifact"
	"github.com/vvka-141/csvload/internal/sqlgen"
	"github.com/vvka-141/csvload/pkg/csvload"
)

// TableCreationService implements the TableCreator interface.
// Thread-Safety: safe for concurrent CreateTable() calls only when each call
// uses its own work directory.
type TableCreationService struct {
	connectorFactory csvload.ConnectorFactory
	stores           StoreFactory
	logger           csvload.Logger
}

// NewTableCreationService creates a TableCreationService with all dependencies injected.
// Panics on nil dependencies.
func NewTableCreationService(
	connectorFactory csvload.ConnectorFactory,
	stores StoreFactory,
	logger csvload.Logger,
) *TableCreationService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if stores == nil {
		panic("stores cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &TableCreationService{
		connectorFactory: connectorFactory,
		stores:           stores,
		logger:           logger,
	}
}

// CreateTable drops and recreates config.Table with one text column per
// normalized CSV header.
func (s *TableCreationService) CreateTable(ctx context.Context, config csvload.CreateConfig) (*csvload.CreateResult, error) {
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
	if len(data.headers) == 0 || len(data.rows) == 0 {
		return nil, fmt.Errorf("%s has %d column(s) and %d data row(s): %w",
			config.CSVPath, len(data.headers), len(data.rows), csvload.ErrEmptyCSV)
	}
	s.logger.Verbose("Columns: %v (headers %q)", data.headers, data.rawHeaders)

	script := sqlgen.BuildCreateTableScript(config.Table, data.headers, config.EffectiveColumnType())
	if config.IncludeData {
		script += sqlgen.BuildInsertScript(config.Table, data.headers, alignValues(data), csvload.DefaultScriptBatchSize)
	}

	script, scriptPath, discard, err := s.stageScript(config, script)
	if discard != nil {
		defer discard()
	}
	if err != nil {
		return nil, err
	}

	conn, err := connect(ctx, s.connectorFactory, config.Connection)
	if err != nil {
		return nil, err
	}
	defer closeConn(conn, s.logger)

	s.logger.Verbose("Executing %s", scriptPath)
	if _, err := conn.ExecContext(ctx, script); err != nil {
		return nil, execFailed("create table script", script, err)
	}

	s.logger.Info("✓ Table %s created with %d column(s)", sqlgen.QuoteIdentifier(config.Table), len(data.headers))

	return &csvload.CreateResult{
		Table:       config.Table,
		Columns:     data.headers,
		RowsScanned: len(data.rows),
		ScriptPath:  scriptPath,
	}, nil
}

// stageScript writes the script artifact and reads it back. The returned
// discard func is non-nil once the file exists and must run on every path.
func (s *TableCreationService) stageScript(config csvload.CreateConfig, script string) (string, string, func(), error) {
	art := artifact.New(s.stores(config.WorkDir), csvload.CreateTableArtifact, config.KeepArtifacts)
	if err := art.Write([]byte(script)); err != nil {
		return "", art.Path(), nil, err
	}
	discard := func() { art.Discard(s.logger) }
	s.logger.Verbose("Wrote %s", art.Path())

	staged, err := art.Read()
	if err != nil {
		return "", art.Path(), discard, err
	}
	return string(staged), art.Path(), discard, nil
}

// alignValues lays rows out column by column. Absent and empty values are nil.
func alignValues(data *csvData) [][]*string {
	out := make([][]*string, len(data.rows))
	for i, row := range data.rows {
		values := make([]*string, len(data.headers))
		for j, col := range data.headers {
			if v, ok := row.Get(col); ok && v != "" {
				values[j] = &v
			}
		}
		out[i] = values
	}
	return out
}

var _ csvload.TableCreator = (*TableCreationService)(nil)
