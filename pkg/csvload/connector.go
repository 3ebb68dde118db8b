package csvload

import (
	"context"
	"database/sql"
)

// Connector is a unified interface for establishing database connections.
// Different implementations handle various authentication methods
// (standard credentials, cloud IAM tokens, Cloud SQL dialer).
type Connector interface {
	// Connect opens and verifies a connection.
	// The returned connection should be closed by the caller when done.
	Connect(ctx context.Context) (DBConnection, error)
}

// ConnectorFactory builds a Connector for resolved connection parameters.
type ConnectorFactory func(*ConnectionConfig) (Connector, error)

// DBConnection abstracts the statements the pipelines issue.
// *sqlx.DB satisfies it; tests substitute recorders.
type DBConnection interface {
	// ExecContext executes a statement without returning rows.
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)

	// Close releases the connection.
	Close() error
}
