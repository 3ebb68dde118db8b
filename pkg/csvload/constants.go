package csvload

import "time"

// Exit codes for semantic error classification.
//   - 0: Success
//   - 1: General error, including missing positional arguments
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Pipeline completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 1  // Missing <csv_path> or <table_name>
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or flags
	ExitConnectionError = 11 // Failed to connect to database
	ExitExecutionFailed = 13 // SQL execution failed
	ExitArtifactMissing = 14 // Intermediate file vanished between stages
	ExitEmptyCSV        = 15 // CSV has no columns or no rows
)

const (
	// CreateTableArtifact is the SQL script written by the table-creation pipeline.
	CreateTableArtifact = "create_table.sql"

	// InsertArtifact is the JSON rows file written by the insertion pipeline.
	InsertArtifact = "output.json"

	// DefaultColumnType is applied to every inferred column.
	DefaultColumnType = "VARCHAR(255)"

	// TableOptions is appended to every CREATE TABLE statement.
	TableOptions = "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci"

	// DefaultHost and DefaultPort are used when nothing else names a server.
	DefaultHost = "localhost"
	DefaultPort = 3306

	// DefaultTimeout is zero: a run has no deadline unless one is configured.
	// TRUNCATE commits before the INSERTs, so a deadline can leave the table empty.
	DefaultTimeout time.Duration = 0

	// DefaultScriptBatchSize is the number of rows per INSERT appended to the
	// create-table script when data is included.
	DefaultScriptBatchSize = 1000

	// MaxPlaceholders is MySQL's limit on bound parameters in one prepared statement.
	MaxPlaceholders = 65535

	// MaxErrorPreviewLength is the maximum number of characters of SQL shown
	// in error messages.
	MaxErrorPreviewLength = 200
)
