package db

import (
	"context"
	"time"
)

// TokenProvider abstracts cloud token acquisition for database authentication.
type TokenProvider interface {
	// GetToken acquires a short-lived token that is sent as the MySQL password.
	// Returns the token string and its expiry time.
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String returns a human-readable description for logging.
	// Should NOT include secrets.
	String() string
}

// AzureMySQLScope is the OAuth scope for Azure Database for MySQL.
const AzureMySQLScope = "https://ossrdbms-aad.database.windows.net/.default"
